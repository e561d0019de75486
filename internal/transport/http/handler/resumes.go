package handler

import (
	"net/http"

	"github.com/jobdesk/jobdesk-api/internal/application/resume"
	"github.com/jobdesk/jobdesk-api/internal/transport/http/middleware"
)

// maxResumeSize caps resume uploads at 10 MiB.
const maxResumeSize = 10 << 20

// ResumeHandler handles resume file uploads.
type ResumeHandler struct {
	svc resume.Service
}

func NewResumeHandler(svc resume.Service) *ResumeHandler { return &ResumeHandler{svc: svc} }

func (h *ResumeHandler) Upload(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxResumeSize)
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer file.Close()

	link, err := h.svc.Upload(r.Context(), caller.UserID, header.Filename, file)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ResumeEnvelope{ResumeLink: link})
}
