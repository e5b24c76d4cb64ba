package mockserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInboxURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "http://127.0.0.1:8787", want: "ws://127.0.0.1:8787/ws/inbox"},
		{in: "http://127.0.0.1:8787/", want: "ws://127.0.0.1:8787/ws/inbox"},
		{in: "https://mock.example", want: "wss://mock.example/ws/inbox"},
		{in: "ws://host:1/custom", want: "ws://host:1/custom"},
		{in: "ftp://host", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := InboxURL(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("InboxURL(%q) expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("InboxURL(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("InboxURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInbox_HistoryIsBounded(t *testing.T) {
	in := NewInbox()
	for i := 0; i < historySize+5; i++ {
		in.Publish(NewInboxMessage("a@b.co", "s", "b"))
	}
	require.Len(t, in.History(), historySize)
}

func TestTailInbox_ReplaysAndStreams(t *testing.T) {
	srv, err := New(&Config{NoMDNS: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	srv.Inbox().Publish(NewInboxMessage("early@uni.edu.ng", "Before connect", "backlog"))

	wsURL, err := InboxURL(ts.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan InboxMessage, 4)
	done := make(chan error, 1)
	go func() {
		done <- TailInbox(ctx, wsURL, func(m InboxMessage) { got <- m })
	}()

	recv := func() InboxMessage {
		t.Helper()
		select {
		case m := <-got:
			return m
		case err := <-done:
			t.Fatalf("TailInbox returned early: %v", err)
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for inbox message")
		}
		return InboxMessage{}
	}

	first := recv()
	require.Equal(t, "early@uni.edu.ng", first.To)

	require.Eventually(t, func() bool { return srv.Inbox().Clients() == 1 }, 2*time.Second, 10*time.Millisecond)
	srv.Inbox().Publish(NewInboxMessage("live@uni.edu.ng", "After connect", "live"))

	second := recv()
	require.Equal(t, "live@uni.edu.ng", second.To)
	require.NotEmpty(t, second.ID)

	cancel()
	require.NoError(t, <-done)
	require.Eventually(t, func() bool { return srv.Inbox().Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}
