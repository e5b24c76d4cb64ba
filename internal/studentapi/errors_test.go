package studentapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"
	"testing"
)

func TestClassifyNetworkError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ErrorType
		retryable bool
	}{
		{"deadline", context.DeadlineExceeded, ErrTypeTimeout, true},
		{"canceled", context.Canceled, ErrTypeCanceled, false},
		{"dns", &net.DNSError{Name: "api.invalid", Err: "no such host"}, ErrTypeDNS, false},
		{
			"connection refused",
			&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED},
			ErrTypeConnectionRefused,
			true,
		},
		{
			"wrapped in url error",
			&url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
			ErrTypeConnectionRefused,
			true,
		},
		{"generic", errors.New("broken pipe"), ErrTypeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyNetworkError(tt.err)
			if got.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", got.Type, tt.wantType)
			}
			if got.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", got.Retryable, tt.retryable)
			}
			if !errors.Is(got, tt.err) {
				t.Error("classified error should wrap the original")
			}
		})
	}

	if ClassifyNetworkError(nil) != nil {
		t.Error("nil error should classify to nil")
	}
}

func TestHelpersSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("submit code: %w", NewValidationError("student ID must be 8 digits"))

	if !IsValidationError(err) {
		t.Error("IsValidationError should unwrap")
	}
	if IsNetworkError(err) {
		t.Error("validation error is not a network error")
	}
	if ShortMessage(err) != "student ID must be 8 digits" {
		t.Errorf("ShortMessage = %q", ShortMessage(err))
	}
}

func TestNewHTTPErrorRetryable(t *testing.T) {
	if !NewHTTPError(503, "down").Retryable {
		t.Error("5xx should be retryable")
	}
	if NewHTTPError(400, "bad").Retryable {
		t.Error("4xx should not be retryable")
	}
}

func TestTroubleshootingHint(t *testing.T) {
	hint := TroubleshootingHint(ClassifyNetworkError(&net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}))
	if !strings.Contains(hint, "campuspass-mock") {
		t.Errorf("hint should point at the mock backend, got %q", hint)
	}
	if TroubleshootingHint(errors.New("plain")) == "" {
		t.Error("hint for foreign error should not be empty")
	}
}
