package studentapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const testUserID = "5f0c7d8e-2b1a-4c3d-9e8f-0a1b2c3d4e5f"

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(server.URL)
	client.RetryDelay = time.Millisecond
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestNewClient(t *testing.T) {
	client := NewClient("http://127.0.0.1:9000/")

	if client.BaseURL != "http://127.0.0.1:9000" {
		t.Errorf("BaseURL = %s, want trailing slash trimmed", client.BaseURL)
	}
	if client.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.HTTPClient.Timeout, DefaultTimeout)
	}
	if client.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", client.MaxRetries)
	}

	if NewClient("").BaseURL != DefaultBaseURL {
		t.Errorf("empty base URL should fall back to %s", DefaultBaseURL)
	}
}

func TestVerify_SendsRequestAndDecodesOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		response VerifyResult
		want     Outcome
	}{
		{
			name:     "verified",
			response: VerifyResult{Success: true, Status: StatusVerified},
			want:     OutcomeVerified,
		},
		{
			name:     "already matched",
			response: VerifyResult{Success: true, Status: StatusAlreadyMatched},
			want:     OutcomeVerified,
		},
		{
			name: "needs confirmation",
			response: VerifyResult{
				Success: true,
				Status:  StatusNeedsConfirmation,
				Student: &Student{FullName: "Ada Obi", StudentID: "20231145", SchLevel: "200", IsEnrolled: true},
			},
			want: OutcomeNeedsConfirmation,
		},
		{
			name:     "failed",
			response: VerifyResult{Success: false, Status: StatusFailed, Message: "no student record found"},
			want:     OutcomeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != PathVerify {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				var req VerifyRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decode request: %v", err)
				}
				if req.UserID != testUserID || req.StudentID != "20231145" || req.Role != RoleStudent {
					t.Errorf("request = %+v", req)
				}
				writeJSON(t, w, http.StatusOK, tt.response)
			})

			result, err := client.Verify(context.Background(), testUserID, "20231145", "")
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if got := result.Outcome(); got != tt.want {
				t.Errorf("Outcome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerify_ValidatesBeforeSending(t *testing.T) {
	var hits int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	})

	cases := []struct {
		userID, code string
	}{
		{"", "20231145"},
		{"not-a-uuid", "20231145"},
		{testUserID, "2023114"},
		{testUserID, "202311450"},
		{testUserID, "2023114a"},
	}
	for _, c := range cases {
		_, err := client.Verify(context.Background(), c.userID, c.code, RoleStudent)
		if !IsValidationError(err) {
			t.Errorf("Verify(%q, %q) error = %v, want validation error", c.userID, c.code, err)
		}
	}

	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Errorf("server received %d requests, want 0", n)
	}
}

func TestSendVerification(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathEmailVerification {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req EmailRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(t, w, http.StatusOK, SendResult{Sent: req.Email == "ada@uni.edu.ng"})
	})

	sent, err := client.SendVerification(context.Background(), "ada@uni.edu.ng")
	if err != nil || !sent {
		t.Errorf("SendVerification() = %v, %v; want true, nil", sent, err)
	}

	if _, err := client.SendVerification(context.Background(), "ada@"); !IsValidationError(err) {
		t.Errorf("malformed address should fail validation, got %v", err)
	}
}

func TestConfirmEmail(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var req EmailConfirmRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(t, w, http.StatusOK, StatusResult{Success: req.Code == "123456"})
	})

	ok, err := client.ConfirmEmail(context.Background(), testUserID, "ada@uni.edu.ng", "123456")
	if err != nil || !ok {
		t.Errorf("ConfirmEmail(correct) = %v, %v", ok, err)
	}
	ok, err = client.ConfirmEmail(context.Background(), testUserID, "ada@uni.edu.ng", "654321")
	if err != nil || ok {
		t.Errorf("ConfirmEmail(wrong) = %v, %v; want false, nil", ok, err)
	}
	if _, err := client.ConfirmEmail(context.Background(), testUserID, "ada@uni.edu.ng", "12345"); !IsValidationError(err) {
		t.Errorf("short code should fail validation, got %v", err)
	}
}

func TestRequestPasswordReset(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != PathPasswordReset {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(t, w, http.StatusOK, SendResult{Sent: true})
	})

	sent, err := client.RequestPasswordReset(context.Background(), "ada@uni.edu.ng")
	if err != nil || !sent {
		t.Errorf("RequestPasswordReset() = %v, %v", sent, err)
	}
}

func TestPing(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, HealthResult{Status: "ok"})
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestHTTPErrorUsesServiceMessage(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusTooManyRequests, StatusResult{Message: "wait 30s before requesting another code"})
	})

	_, err := client.SendVerification(context.Background(), "ada@uni.edu.ng")
	apiErr, ok := asAPIError(err)
	if !ok {
		t.Fatalf("error = %T, want *APIError", err)
	}
	if apiErr.Type != ErrTypeHTTP || apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("error = %+v", apiErr)
	}
	if apiErr.Message != "wait 30s before requesting another code" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestParseError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>gateway</html>"))
	})

	_, err := client.Verify(context.Background(), testUserID, "20231145", RoleStudent)
	apiErr, ok := asAPIError(err)
	if !ok || apiErr.Type != ErrTypeParse {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestRetriesOnlyWhenEnabled(t *testing.T) {
	var hits int32
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(t, w, http.StatusOK, SendResult{Sent: true})
	})

	if _, err := client.SendVerification(context.Background(), "ada@uni.edu.ng"); err == nil {
		t.Fatal("expected failure without retries")
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("hits = %d, want 1 with retries disabled", n)
	}

	client.SetRetry(3, time.Millisecond)
	sent, err := client.SendVerification(context.Background(), "ada@uni.edu.ng")
	if err != nil || !sent {
		t.Errorf("SendVerification() with retries = %v, %v", sent, err)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Errorf("hits = %d, want 3", n)
	}
}

func TestCanceledContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, SendResult{Sent: true})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SendVerification(ctx, "ada@uni.edu.ng")
	if !IsCanceled(err) {
		t.Errorf("error = %v, want canceled", err)
	}
	if IsRetryable(err) {
		t.Error("canceled requests must not be retried")
	}
}

func TestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url)
	err := client.Ping(context.Background())
	if !IsNetworkError(err) {
		t.Fatalf("error = %v, want network error", err)
	}
	if ShortMessage(err) == "" {
		t.Error("ShortMessage should not be empty")
	}
}
