package studentapi

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
)

// StudentIDLength is the number of digits in a student ID.
const StudentIDLength = 8

// OTPLength is the number of digits in an email verification code.
const OTPLength = 6

// ValidateEmail checks that addr is a bare address with a dotted domain.
func ValidateEmail(addr string) error {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return NewValidationError("email address cannot be empty")
	}

	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return NewValidationError(fmt.Sprintf("%q is not a valid email address", addr))
	}

	at := strings.LastIndex(addr, "@")
	domain := addr[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return NewValidationError(fmt.Sprintf("email domain %q is incomplete", domain))
	}
	return nil
}

// ValidateStudentID requires code to be exactly n ASCII digits.
func ValidateStudentID(code string, n int) error {
	if err := validateDigits(code, n); err != nil {
		return NewValidationError(fmt.Sprintf("student ID %s", err))
	}
	return nil
}

// ValidateOTP requires code to be exactly n ASCII digits.
func ValidateOTP(code string, n int) error {
	if err := validateDigits(code, n); err != nil {
		return NewValidationError(fmt.Sprintf("verification code %s", err))
	}
	return nil
}

// ValidateUserID requires a non-empty UUID.
func ValidateUserID(id string) error {
	if id == "" {
		return NewValidationError("user ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return NewValidationError(fmt.Sprintf("user ID %q is not a UUID", id))
	}
	return nil
}

func validateDigits(code string, n int) error {
	if len(code) != n {
		return fmt.Errorf("must be exactly %d digits, got %d", n, len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("must contain only digits")
		}
	}
	return nil
}
