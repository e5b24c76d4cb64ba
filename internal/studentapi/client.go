package studentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/version"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is where the mock backend listens by default
	DefaultBaseURL = "http://127.0.0.1:8787"

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultRetryDelay is the initial delay between retry attempts
	DefaultRetryDelay = 1 * time.Second

	// DefaultMaxRetryDelay is the maximum delay for exponential backoff
	DefaultMaxRetryDelay = 30 * time.Second

	maxResponseBytes = 1 << 20
)

// API paths served by the backend.
const (
	PathHealth            = "/health"
	PathVerify            = "/api/v1/students/verify"
	PathConfirm           = "/api/v1/students/confirm"
	PathEmailVerification = "/api/v1/email/verification"
	PathEmailConfirm      = "/api/v1/email/confirm"
	PathPasswordReset     = "/api/v1/password/reset"
	PathInbox             = "/ws/inbox"
)

// Client talks to the student verification and email services.
type Client struct {
	// BaseURL is the service root (e.g., "http://127.0.0.1:8787")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the number of extra attempts for retryable failures.
	// Interactive callers leave it at zero and let the user retry.
	MaxRetries int

	// RetryDelay is the initial delay between retry attempts
	RetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff
	MaxRetryDelay time.Duration
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		HTTPClient:    &http.Client{Timeout: DefaultTimeout},
		RetryDelay:    DefaultRetryDelay,
		MaxRetryDelay: DefaultMaxRetryDelay,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// SetRetry configures retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Ping checks that the service answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var health HealthResult
	if err := c.do(ctx, http.MethodGet, PathHealth, nil, &health); err != nil {
		return err
	}
	if health.Status != "ok" {
		return NewHTTPError(http.StatusServiceUnavailable, fmt.Sprintf("service reports status %q", health.Status))
	}
	return nil
}

// Verify submits a student ID for the given user. A non-nil result with
// Outcome() == OutcomeFailed is a service-level rejection, not an error.
func (c *Client) Verify(ctx context.Context, userID, studentID, role string) (*VerifyResult, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ValidateStudentID(studentID, StudentIDLength); err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleStudent
	}

	var result VerifyResult
	req := VerifyRequest{UserID: userID, StudentID: studentID, Role: role}
	if err := c.doWithRetry(ctx, http.MethodPost, PathVerify, req, &result); err != nil {
		return nil, err
	}

	logging.Debug("Student verification answered",
		zap.String("student_id", studentID),
		zap.Bool("success", result.Success),
		zap.String("status", result.Status),
		zap.Stringer("outcome", result.Outcome()),
	)
	return &result, nil
}

// Confirm binds studentID to userID after the user accepted the record.
func (c *Client) Confirm(ctx context.Context, userID, studentID string) (*ConfirmResult, error) {
	if err := ValidateUserID(userID); err != nil {
		return nil, err
	}
	if err := ValidateStudentID(studentID, StudentIDLength); err != nil {
		return nil, err
	}

	var result ConfirmResult
	req := ConfirmRequest{UserID: userID, StudentID: studentID}
	if err := c.doWithRetry(ctx, http.MethodPost, PathConfirm, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendVerification asks the service to mail a one-time code to email.
func (c *Client) SendVerification(ctx context.Context, email string) (bool, error) {
	if err := ValidateEmail(email); err != nil {
		return false, err
	}

	var result SendResult
	if err := c.doWithRetry(ctx, http.MethodPost, PathEmailVerification, EmailRequest{Email: email}, &result); err != nil {
		return false, err
	}
	return result.Sent, nil
}

// ConfirmEmail proves ownership of email with the code that was sent to it.
func (c *Client) ConfirmEmail(ctx context.Context, userID, email, code string) (bool, error) {
	if err := ValidateUserID(userID); err != nil {
		return false, err
	}
	if err := ValidateEmail(email); err != nil {
		return false, err
	}
	if err := ValidateOTP(code, OTPLength); err != nil {
		return false, err
	}

	var result StatusResult
	req := EmailConfirmRequest{UserID: userID, Email: email, Code: code}
	if err := c.doWithRetry(ctx, http.MethodPost, PathEmailConfirm, req, &result); err != nil {
		return false, err
	}
	return result.Success, nil
}

// RequestPasswordReset asks the service to mail a reset link to email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	if err := ValidateEmail(email); err != nil {
		return false, err
	}

	var result SendResult
	if err := c.doWithRetry(ctx, http.MethodPost, PathPasswordReset, PasswordResetRequest{Email: email}, &result); err != nil {
		return false, err
	}
	return result.Sent, nil
}

func (c *Client) doWithRetry(ctx context.Context, method, path string, body, out any) error {
	var lastErr error
	currentDelay := c.RetryDelay

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			logging.Debug("Retrying request",
				zap.String("path", path),
				zap.Int("attempt", attempt),
				zap.Duration("delay", currentDelay),
			)
			select {
			case <-ctx.Done():
				return ClassifyNetworkError(ctx.Err())
			case <-time.After(currentDelay):
			}

			currentDelay *= 2
			if c.MaxRetryDelay > 0 && currentDelay > c.MaxRetryDelay {
				currentDelay = c.MaxRetryDelay
			}
		}

		err := c.do(ctx, method, path, body, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// do performs a single request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return NewParseError("failed to encode request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return NewNetworkError("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Warn("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.Debug("Response received",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return NewNetworkError("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
		var envelope StatusResult
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		return NewHTTPError(resp.StatusCode, msg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return NewParseError("failed to parse JSON response", err)
	}
	return nil
}
