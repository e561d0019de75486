package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jobdesk/jobdesk-api/internal/application/jobapp"
	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/transport/http/middleware"
)

// ApplicationHandler handles application lifecycle endpoints.
type ApplicationHandler struct {
	svc jobapp.Service
}

func NewApplicationHandler(svc jobapp.Service) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	a, err := h.svc.Apply(r.Context(), caller.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApplicationCreatedEnvelope{
		Message:       "application submitted",
		ApplicationID: a.ApplicationID,
	})
}

func (h *ApplicationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.ListMine(r.Context(), caller.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationViews(apps))
}

func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	apps, err := h.svc.ListForJob(r.Context(), caller.UserID, chi.URLParam(r, "job_id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toApplicationViews(apps))
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		writeError(w, http.StatusBadRequest, "status required")
		return
	}
	a, err := h.svc.UpdateStatus(r.Context(), caller.UserID, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "application status set to " + string(a.Status)})
}

func (h *ApplicationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Withdraw(r.Context(), caller.UserID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "application withdrawn"})
}

func toApplicationViews(apps []domain.Application) []ApplicationView {
	views := make([]ApplicationView, len(apps))
	for i, a := range apps {
		v := ApplicationView{
			ID:          a.ApplicationID,
			JobID:       a.JobID,
			ApplicantID: a.ApplicantID,
			ResumeLink:  a.ResumeLink,
			CoverLetter: a.CoverLetter,
			Status:      string(a.Status),
			AppliedAt:   a.AppliedAt.UTC().Format(time.RFC3339),
		}
		if a.Job != nil {
			v.JobTitle = a.Job.Title
		}
		if a.Applicant != nil {
			v.ApplicantName = a.Applicant.Name
		}
		views[i] = v
	}
	return views
}
