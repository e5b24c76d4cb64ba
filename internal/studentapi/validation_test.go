package studentapi

import "testing"

// TestValidateEmail tests address validation
func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"Valid: simple", "ada@uni.edu.ng", false},
		{"Valid: plus tag", "ada+campus@example.com", false},
		{"Valid: surrounding space trimmed", "  ada@example.com ", false},
		{"Invalid: empty", "", true},
		{"Invalid: missing at", "ada.example.com", true},
		{"Invalid: missing domain", "ada@", true},
		{"Invalid: domain without dot", "ada@localhost", true},
		{"Invalid: trailing dot", "ada@example.", true},
		{"Invalid: display name", "Ada <ada@example.com>", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("Expected validation error, got %T", err)
			}
		})
	}
}

// TestValidateStudentID tests fixed-length numeric code validation
func TestValidateStudentID(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"Valid: 8 digits", "20231145", false},
		{"Valid: leading zeros", "00000001", false},
		{"Invalid: short", "1234567", true},
		{"Invalid: long", "123456789", true},
		{"Invalid: letter", "1234567x", true},
		{"Invalid: empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStudentID(tt.code, StudentIDLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStudentID(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOTP(t *testing.T) {
	if err := ValidateOTP("123456", OTPLength); err != nil {
		t.Errorf("ValidateOTP(valid) error = %v", err)
	}
	if err := ValidateOTP("12345", OTPLength); !IsValidationError(err) {
		t.Errorf("ValidateOTP(short) error = %v", err)
	}
}

func TestValidateUserID(t *testing.T) {
	if err := ValidateUserID(testUserID); err != nil {
		t.Errorf("ValidateUserID(valid) error = %v", err)
	}
	for _, id := range []string{"", "user-1"} {
		if err := ValidateUserID(id); !IsValidationError(err) {
			t.Errorf("ValidateUserID(%q) error = %v, want validation error", id, err)
		}
	}
}
