package studentapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout or deadline
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-2xx status code
	ErrTypeHTTP
	// ErrTypeParse indicates a malformed response body
	ErrTypeParse
	// ErrTypeValidation indicates input rejected before any request was sent
	ErrTypeValidation
	// ErrTypeCanceled indicates the caller canceled the request
	ErrTypeCanceled
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError is returned by every Client operation that fails.
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the request may be retried
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error onto an APIError.
func ClassifyNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &APIError{Type: ErrTypeCanceled, Message: "Request canceled", Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: "Request timed out", Err: err, Retryable: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:    ErrTypeDNS,
			Message: fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:     err,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{
			Type:      ErrTypeConnectionRefused,
			Message:   "Service refused connection",
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		classified := ClassifyNetworkError(urlErr.Err)
		classified.Err = err
		return classified
	}

	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   "Network error occurred",
		Err:       err,
		Retryable: true,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	classified := ClassifyNetworkError(err)
	if classified == nil {
		return &APIError{Type: ErrTypeNetwork, Message: message, Retryable: true}
	}
	classified.Message = message
	return classified
}

// NewHTTPError creates an HTTP-level error
func NewHTTPError(statusCode int, message string) *APIError {
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    message,
		StatusCode: statusCode,
		Retryable:  statusCode >= 500 || statusCode == 429,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return &APIError{Type: ErrTypeValidation, Message: message}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError reports whether err is a transport failure of any kind.
func IsNetworkError(err error) bool {
	apiErr, ok := asAPIError(err)
	if !ok {
		return false
	}
	switch apiErr.Type {
	case ErrTypeNetwork, ErrTypeTimeout, ErrTypeConnectionRefused, ErrTypeDNS:
		return true
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeValidation
}

// IsCanceled checks if an error came from a canceled context
func IsCanceled(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Type == ErrTypeCanceled
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	apiErr, ok := asAPIError(err)
	return ok && apiErr.Retryable
}

// TroubleshootingHint returns multi-line advice for an error, suitable for
// CLI output.
func TroubleshootingHint(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The service did not respond in time.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Try again with a longer --timeout",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"The service refused the connection.",
			"Troubleshooting:",
			"  • Check that the backend is running (campuspass-mock serve)",
			"  • Verify the api_url setting points at the right port",
			"  • Run 'campuspass discover' to find a backend on your network",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the service hostname.",
			"Troubleshooting:",
			"  • Check the api_url setting for typos",
			"  • Check your network DNS settings",
		}, "\n")

	case ErrTypeNetwork:
		return strings.Join([]string{
			"Network communication failed.",
			"Troubleshooting:",
			"  • Check your network connection",
			"  • Verify the backend is reachable from this machine",
		}, "\n")

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return fmt.Sprintf("The service returned an error (HTTP %d). Try again later.", apiErr.StatusCode)
		}
		if apiErr.StatusCode == 429 {
			return "Too many requests. Wait a moment before trying again."
		}
		return fmt.Sprintf("The service rejected the request (HTTP %d). Check the values you entered.", apiErr.StatusCode)

	case ErrTypeParse:
		return "The service sent a response this client does not understand. Check that client and backend versions match."

	case ErrTypeValidation:
		return "The values entered are invalid. Check the error message for details."

	default:
		return "An error occurred. Please check the error message for details."
	}
}

// ShortMessage returns a concise, user-facing message for err.
func ShortMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Service not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Cannot reach the service - is it running?"
	case ErrTypeDNS:
		return "Cannot resolve service hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeHTTP:
		if apiErr.StatusCode == 429 {
			return "Please wait before trying again"
		}
		return fmt.Sprintf("Service error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from service"
	case ErrTypeCanceled:
		return "Request canceled"
	default:
		return apiErr.Message
	}
}
