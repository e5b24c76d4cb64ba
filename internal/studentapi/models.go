package studentapi

// Role values sent with a verification request.
const (
	RoleStudent = "student"
)

// Verification statuses reported by the service.
const (
	StatusVerified          = "verified"
	StatusAlreadyMatched    = "already_matched"
	StatusNeedsConfirmation = "needs_confirmation"
	StatusFailed            = "failed"
)

// Student is the record the service holds for a student ID.
type Student struct {
	FullName   string `json:"full_name" yaml:"full_name"`
	StudentID  string `json:"student_id" yaml:"student_id"`
	SchLevel   string `json:"sch_level" yaml:"sch_level"`
	Gender     string `json:"gender" yaml:"gender"`
	IsEnrolled bool   `json:"is_enrolled" yaml:"is_enrolled"`
}

// VerifyRequest asks the service to match a student ID to a user.
type VerifyRequest struct {
	UserID    string `json:"user_id"`
	StudentID string `json:"student_id"`
	Role      string `json:"role"`
}

// VerifyResult is the service's answer to a VerifyRequest.
type VerifyResult struct {
	Success bool     `json:"success"`
	Status  string   `json:"status,omitempty"`
	Student *Student `json:"student,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Outcome classifies a verification result.
type Outcome int

const (
	// OutcomeFailed means the ID could not be matched to this user.
	OutcomeFailed Outcome = iota
	// OutcomeVerified means the ID is matched to this user.
	OutcomeVerified
	// OutcomeNeedsConfirmation means a record exists and the user must
	// confirm it is theirs.
	OutcomeNeedsConfirmation
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeVerified:
		return "verified"
	case OutcomeNeedsConfirmation:
		return "needs confirmation"
	default:
		return "failed"
	}
}

// Outcome maps the result onto one of the three outcomes the UI renders.
// A successful result without an explicit status counts as verified.
func (r *VerifyResult) Outcome() Outcome {
	if r == nil || !r.Success {
		return OutcomeFailed
	}
	switch r.Status {
	case StatusNeedsConfirmation:
		if r.Student == nil {
			return OutcomeFailed
		}
		return OutcomeNeedsConfirmation
	case StatusFailed:
		return OutcomeFailed
	default:
		return OutcomeVerified
	}
}

// ConfirmRequest binds a previously verified student ID to a user.
type ConfirmRequest struct {
	UserID    string `json:"user_id"`
	StudentID string `json:"student_id"`
}

// ConfirmResult is the service's answer to a ConfirmRequest.
type ConfirmResult struct {
	Success bool     `json:"success"`
	Student *Student `json:"student,omitempty"`
	Message string   `json:"message,omitempty"`
}

// EmailRequest asks the service to send a one-time code to an address.
type EmailRequest struct {
	Email string `json:"email"`
}

// EmailConfirmRequest proves ownership of an address with the code sent to it.
type EmailConfirmRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Code   string `json:"code"`
}

// PasswordResetRequest asks the service to mail a reset link.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// SendResult acknowledges an email dispatch.
type SendResult struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message,omitempty"`
}

// StatusResult is the generic success/message envelope.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResult is returned by the health endpoint.
type HealthResult struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
