// Package studentapi provides an HTTP client for the student verification
// and email services used during onboarding.
//
// # Operations
//
//   - Verify: match an 8-digit student ID to a user
//   - Confirm: bind a verified ID after the user accepts the record
//   - SendVerification / ConfirmEmail: one-time code round trip for an address
//   - RequestPasswordReset: mail a reset link
//
// Every operation validates its input locally first and returns a
// validation *APIError without touching the network when it is malformed.
//
// # Usage Example
//
//	client := studentapi.NewClient("http://127.0.0.1:8787")
//	result, err := client.Verify(ctx, userID, "20231145", studentapi.RoleStudent)
//	if err != nil {
//	    fmt.Println(studentapi.ShortMessage(err))
//	    return
//	}
//	switch result.Outcome() {
//	case studentapi.OutcomeVerified:
//	case studentapi.OutcomeNeedsConfirmation:
//	case studentapi.OutcomeFailed:
//	}
//
// # Error Handling
//
// Failures are *APIError values classified by ErrorType. Use IsNetworkError,
// IsValidationError and IsRetryable to branch, and ShortMessage or
// TroubleshootingHint to present them.
//
// Retries are off by default (MaxRetries 0). The TUI lets the user retry;
// non-interactive commands may enable retries with SetRetry.
package studentapi
