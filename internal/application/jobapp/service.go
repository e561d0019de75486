package jobapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/pkg/id"
	"github.com/jobdesk/jobdesk-api/internal/pkg/validate"
)

type Service interface {
	// Apply submits an application against an Open job. At most one
	// application per applicant per job.
	Apply(ctx context.Context, applicantID string, req domain.ApplyRequest) (*domain.Application, error)
	ListMine(ctx context.Context, applicantID string) ([]domain.Application, error)
	// ListForJob is restricted to the job's creator.
	ListForJob(ctx context.Context, callerID, jobID string) ([]domain.Application, error)
	// UpdateStatus is restricted to the creator of the application's job.
	UpdateStatus(ctx context.Context, callerID, applicationID, status string) (*domain.Application, error)
	// Withdraw deletes the application; only the owning applicant may do it.
	Withdraw(ctx context.Context, callerID, applicationID string) error
}

type applicationStore interface {
	Create(ctx context.Context, a *domain.Application) error
	Get(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicantAndJob(ctx context.Context, applicantID, jobID string) (*domain.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error)
	ListByJob(ctx context.Context, jobID string) ([]domain.Application, error)
	UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error
	Delete(ctx context.Context, applicationID string) error
}

type jobStore interface {
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

// resumeCleaner deletes a stored resume object once the application that
// referenced it is withdrawn.
type resumeCleaner interface {
	Remove(ctx context.Context, userID, link string) error
}

// Transitions restricts status changes when set. A nil table allows any
// status to be overwritten with any other, which matches the historically
// observed behavior of this API.
type Transitions map[domain.ApplicationStatus][]domain.ApplicationStatus

func (t Transitions) allowed(from, to domain.ApplicationStatus) bool {
	if t == nil {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}

type service struct {
	apps        applicationStore
	jobs        jobStore
	cleaner     resumeCleaner
	transitions Transitions
}

type ServiceDeps struct {
	ApplicationRepo applicationStore
	JobRepo         jobStore
	ResumeCleaner   resumeCleaner
	Transitions     Transitions
}

func NewService(deps ServiceDeps) Service {
	return &service{
		apps:        deps.ApplicationRepo,
		jobs:        deps.JobRepo,
		cleaner:     deps.ResumeCleaner,
		transitions: deps.Transitions,
	}
}

func (s *service) Apply(ctx context.Context, applicantID string, req domain.ApplyRequest) (*domain.Application, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	j, err := s.jobs.Get(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if j.Status != domain.JobStatusOpen {
		return nil, fmt.Errorf("job is not open for applications: %w", domain.ErrBadRequest)
	}
	// Friendly pre-check. The unique (applicant_id, job_id) index is what
	// actually guarantees at-most-one under concurrent applies.
	if _, err := s.apps.GetByApplicantAndJob(ctx, applicantID, req.JobID); err == nil {
		return nil, fmt.Errorf("already applied to this job: %w", domain.ErrConflict)
	}
	a := &domain.Application{
		ApplicationID: id.New(),
		ApplicantID:   applicantID,
		JobID:         req.JobID,
		ResumeLink:    req.ResumeLink,
		CoverLetter:   req.CoverLetter,
		Status:        domain.ApplicationStatusApplied,
		AppliedAt:     time.Now().UTC(),
	}
	if err := s.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) ListMine(ctx context.Context, applicantID string) ([]domain.Application, error) {
	return s.apps.ListByApplicant(ctx, applicantID)
}

func (s *service) ListForJob(ctx context.Context, callerID, jobID string) ([]domain.Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CreatedBy != callerID {
		return nil, fmt.Errorf("only the job creator may view its applications: %w", domain.ErrForbidden)
	}
	return s.apps.ListByJob(ctx, jobID)
}

func (s *service) UpdateStatus(ctx context.Context, callerID, applicationID, status string) (*domain.Application, error) {
	newStatus, err := domain.ParseApplicationStatus(status)
	if err != nil {
		return nil, err
	}
	a, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a.Job == nil || a.Job.CreatedBy != callerID {
		return nil, fmt.Errorf("only the job creator may update application status: %w", domain.ErrForbidden)
	}
	if !s.transitions.allowed(a.Status, newStatus) {
		return nil, fmt.Errorf("cannot move application from %s to %s: %w", a.Status, newStatus, domain.ErrBadRequest)
	}
	if err := s.apps.UpdateStatus(ctx, applicationID, newStatus); err != nil {
		return nil, err
	}
	a.Status = newStatus
	return a, nil
}

func (s *service) Withdraw(ctx context.Context, callerID, applicationID string) error {
	a, err := s.apps.Get(ctx, applicationID)
	if err != nil {
		return err
	}
	if a.ApplicantID != callerID {
		return fmt.Errorf("only the applicant may withdraw an application: %w", domain.ErrForbidden)
	}
	if err := s.apps.Delete(ctx, applicationID); err != nil {
		return err
	}
	// The stored resume object is orphaned once the row is gone; cleanup
	// failure is logged, not surfaced.
	if s.cleaner != nil {
		if err := s.cleaner.Remove(ctx, a.ApplicantID, a.ResumeLink); err != nil {
			slog.Warn("failed to remove stored resume", "application_id", applicationID, "err", err)
		}
	}
	return nil
}
