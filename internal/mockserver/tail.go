package mockserver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/muurk/campuspass/internal/studentapi"
)

// InboxURL turns an API base URL (http://host:port) into the inbox
// websocket URL. ws:// and wss:// URLs are returned with the path set.
func InboxURL(base string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", base, err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = studentapi.PathInbox
	}
	return u.String(), nil
}

// TailInbox connects to the inbox stream and calls fn for each message
// until ctx ends or the connection drops. A ctx cancellation returns nil.
func TailInbox(ctx context.Context, wsURL string, fn func(InboxMessage)) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to inbox: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	for {
		var msg InboxMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("inbox stream ended: %w", err)
		}
		fn(msg)
	}
}
