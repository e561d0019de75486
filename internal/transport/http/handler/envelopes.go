package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobdesk/jobdesk-api/internal/domain"
)

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AuthEnvelope wraps login responses.
type AuthEnvelope struct {
	AccessToken string `json:"access_token"`
}

// ProfileEnvelope is the /api/auth/me response shape.
type ProfileEnvelope struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
}

// JobCreatedEnvelope wraps job creation responses.
type JobCreatedEnvelope struct {
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// ApplicationCreatedEnvelope wraps application submission responses.
type ApplicationCreatedEnvelope struct {
	Message       string `json:"message"`
	ApplicationID string `json:"application_id"`
}

// ApplicationView is an application with the denormalized fields each
// listing needs: the job title for an applicant's own list, the applicant
// name for a company's per-job list.
type ApplicationView struct {
	ID            string  `json:"id"`
	JobID         string  `json:"job_id"`
	JobTitle      string  `json:"job_title,omitempty"`
	ApplicantID   string  `json:"applicant_id"`
	ApplicantName string  `json:"applicant_name,omitempty"`
	ResumeLink    string  `json:"resume_link"`
	CoverLetter   *string `json:"cover_letter,omitempty"`
	Status        string  `json:"status"`
	AppliedAt     string  `json:"applied_at"`
}

// ResumeEnvelope wraps resume upload responses.
type ResumeEnvelope struct {
	ResumeLink string `json:"resume_link"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}

// writeDomainError maps a service error onto the HTTP taxonomy via the
// domain sentinels it wraps.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
