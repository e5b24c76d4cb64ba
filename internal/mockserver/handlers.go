package mockserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/studentapi"
	"github.com/muurk/campuspass/internal/version"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, studentapi.StatusResult{Message: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "request body is empty")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, studentapi.HealthResult{Status: "ok", Version: version.Version})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req studentapi.VerifyRequest
	if !decode(w, r, &req) {
		return
	}
	if err := studentapi.ValidateUserID(req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := studentapi.ValidateStudentID(req.StudentID, studentapi.StudentIDLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Role != "" && req.Role != studentapi.RoleStudent {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported role %q", req.Role))
		return
	}

	result := s.students.Verify(req.UserID, req.StudentID)
	logging.Info("Student verification",
		zap.String("user_id", req.UserID),
		zap.String("student_id", req.StudentID),
		zap.String("status", result.Status),
	)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	var req studentapi.ConfirmRequest
	if !decode(w, r, &req) {
		return
	}
	if err := studentapi.ValidateUserID(req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := studentapi.ValidateStudentID(req.StudentID, studentapi.StudentIDLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.students.Confirm(req.UserID, req.StudentID))
}

func (s *Server) handleSendVerification(w http.ResponseWriter, r *http.Request) {
	var req studentapi.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	if err := studentapi.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	code, err := s.codes.Issue(req.Email)
	if err != nil {
		var cooldown *CooldownError
		if errors.As(err, &cooldown) {
			writeError(w, http.StatusTooManyRequests, cooldown.Error())
			return
		}
		logging.Error("Failed to issue code", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to issue code")
		return
	}

	s.inbox.Publish(NewInboxMessage(
		strings.TrimSpace(req.Email),
		"Your campuspass verification code",
		fmt.Sprintf("Your code is %s. It expires in %d minutes.", code, int(s.codeTTL.Minutes())),
	))
	writeJSON(w, http.StatusOK, studentapi.SendResult{Sent: true, Message: "verification code sent"})
}

func (s *Server) handleConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req studentapi.EmailConfirmRequest
	if !decode(w, r, &req) {
		return
	}
	if err := studentapi.ValidateUserID(req.UserID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := studentapi.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := studentapi.ValidateOTP(req.Code, studentapi.OTPLength); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !s.codes.Check(req.Email, req.Code) {
		writeJSON(w, http.StatusOK, studentapi.StatusResult{Message: "invalid or expired code"})
		return
	}
	writeJSON(w, http.StatusOK, studentapi.StatusResult{Success: true, Message: "email confirmed"})
}

func (s *Server) handlePasswordReset(w http.ResponseWriter, r *http.Request) {
	var req studentapi.PasswordResetRequest
	if !decode(w, r, &req) {
		return
	}
	if err := studentapi.ValidateEmail(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Always acknowledged, so the response does not reveal which addresses exist.
	token := uuid.NewString()
	s.inbox.Publish(NewInboxMessage(
		strings.TrimSpace(req.Email),
		"Reset your campuspass password",
		"Open http://"+r.Host+"/reset/"+token+" to choose a new password.",
	))
	writeJSON(w, http.StatusOK, studentapi.SendResult{Sent: true, Message: "if the address is registered, a reset link is on its way"})
}
