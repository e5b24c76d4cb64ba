package mockserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/muurk/campuspass/internal/studentapi"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func newTestBackend(t *testing.T) (*Server, *studentapi.Client) {
	t.Helper()
	srv, err := New(&Config{NoMDNS: true, Cooldown: time.Hour})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, studentapi.NewClient(ts.URL)
}

func TestHealth(t *testing.T) {
	_, client := newTestBackend(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestVerifyAndConfirmFlow(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()
	user := uuid.NewString()
	id := SeedStudents[0].StudentID

	result, err := client.Verify(ctx, user, id, "")
	require.NoError(t, err)
	require.Equal(t, studentapi.OutcomeNeedsConfirmation, result.Outcome())
	require.Equal(t, SeedStudents[0].FullName, result.Student.FullName)

	confirmed, err := client.Confirm(ctx, user, id)
	require.NoError(t, err)
	require.True(t, confirmed.Success)

	result, err = client.Verify(ctx, user, id, studentapi.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, studentapi.OutcomeVerified, result.Outcome())

	result, err = client.Verify(ctx, uuid.NewString(), id, "")
	require.NoError(t, err)
	require.Equal(t, studentapi.OutcomeFailed, result.Outcome())
}

func TestVerifyUnknownStudent(t *testing.T) {
	_, client := newTestBackend(t)

	result, err := client.Verify(context.Background(), uuid.NewString(), "99999999", "")
	require.NoError(t, err)
	require.Equal(t, studentapi.OutcomeFailed, result.Outcome())
	require.Equal(t, "no student record found", result.Message)
}

func TestEmailVerificationFlow(t *testing.T) {
	srv, client := newTestBackend(t)
	ctx := context.Background()
	user := uuid.NewString()
	email := "ada@uni.edu.ng"

	sent, err := client.SendVerification(ctx, email)
	require.NoError(t, err)
	require.True(t, sent)

	history := srv.Inbox().History()
	require.Len(t, history, 1)
	require.Equal(t, email, history[0].To)
	match := codePattern.FindStringSubmatch(history[0].Body)
	require.NotNil(t, match, "inbox body should carry the code: %q", history[0].Body)

	wrong := "000000"
	if match[1] == wrong {
		wrong = "111111"
	}
	ok, err := client.ConfirmEmail(ctx, user, email, wrong)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = client.ConfirmEmail(ctx, user, email, match[1])
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSendVerificationCooldown(t *testing.T) {
	_, client := newTestBackend(t)
	ctx := context.Background()

	_, err := client.SendVerification(ctx, "ada@uni.edu.ng")
	require.NoError(t, err)

	_, err = client.SendVerification(ctx, "ada@uni.edu.ng")
	require.Error(t, err)

	var apiErr *studentapi.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Contains(t, apiErr.Message, "try again")
}

func TestPasswordReset(t *testing.T) {
	srv, client := newTestBackend(t)

	sent, err := client.RequestPasswordReset(context.Background(), "nobody@uni.edu.ng")
	require.NoError(t, err)
	require.True(t, sent)

	history := srv.Inbox().History()
	require.Len(t, history, 1)
	require.Contains(t, history[0].Body, "/reset/")
}

func TestHandlers_RejectBadRequests(t *testing.T) {
	srv, err := New(&Config{NoMDNS: true})
	require.NoError(t, err)
	handler := srv.Handler()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"empty body", http.MethodPost, studentapi.PathVerify, "", http.StatusBadRequest},
		{"malformed JSON", http.MethodPost, studentapi.PathVerify, "{", http.StatusBadRequest},
		{"unknown field", http.MethodPost, studentapi.PathEmailVerification, `{"email":"a@b.co","x":1}`, http.StatusBadRequest},
		{"short student ID", http.MethodPost, studentapi.PathVerify, `{"user_id":"` + uuid.NewString() + `","student_id":"123"}`, http.StatusBadRequest},
		{"bad role", http.MethodPost, studentapi.PathVerify, `{"user_id":"` + uuid.NewString() + `","student_id":"20231145","role":"admin"}`, http.StatusBadRequest},
		{"bad email", http.MethodPost, studentapi.PathPasswordReset, `{"email":"not-an-email"}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, studentapi.PathVerify, "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
		})
	}
}

func TestNew_StudentsFileErrors(t *testing.T) {
	_, err := New(&Config{StudentsFile: "/nonexistent/students.yaml"})
	require.Error(t, err)
}
