package job

import (
	"context"
	"fmt"
	"time"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/pkg/id"
	"github.com/jobdesk/jobdesk-api/internal/pkg/validate"
)

// Column names used in partial update maps.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldLocation    = "location"
	fieldStatus      = "status"
)

type Service interface {
	Create(ctx context.Context, callerID string, req domain.CreateJobRequest) (*domain.Job, error)
	Update(ctx context.Context, callerID, jobID string, req domain.UpdateJobRequest) (*domain.Job, error)
	Delete(ctx context.Context, callerID, jobID string) error
	// List is public and never includes Draft jobs. The status filter must
	// name a valid enum value.
	List(ctx context.Context, status, location, keyword string) ([]domain.Job, error)
	// Get is public and returns the job whatever its status; single-item
	// fetch is deliberately not filtered the way listing is.
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

type jobStore interface {
	Create(ctx context.Context, j *domain.Job) error
	Get(ctx context.Context, jobID string) (*domain.Job, error)
	Update(ctx context.Context, jobID string, updates map[string]interface{}) error
	Delete(ctx context.Context, jobID string) error
	List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error)
}

type service struct {
	repo jobStore
}

func NewService(repo jobStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, callerID string, req domain.CreateJobRequest) (*domain.Job, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	status := domain.JobStatusDraft
	if req.Status != nil {
		var err error
		if status, err = domain.ParseJobStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	j := &domain.Job{
		JobID:       id.New(),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Status:      status,
		CreatedBy:   callerID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) Update(ctx context.Context, callerID, jobID string, req domain.UpdateJobRequest) (*domain.Job, error) {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CreatedBy != callerID {
		return nil, fmt.Errorf("only the job creator may modify it: %w", domain.ErrForbidden)
	}
	updates := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" {
		updates[fieldTitle] = *req.Title
	}
	if req.Description != nil && *req.Description != "" {
		updates[fieldDescription] = *req.Description
	}
	if req.Location != nil && *req.Location != "" {
		updates[fieldLocation] = *req.Location
	}
	if req.Status != nil {
		status, err := domain.ParseJobStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		updates[fieldStatus] = status
	}
	if len(updates) == 0 {
		return j, nil
	}
	if err := s.repo.Update(ctx, jobID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, jobID)
}

func (s *service) Delete(ctx context.Context, callerID, jobID string) error {
	j, err := s.repo.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if j.CreatedBy != callerID {
		return fmt.Errorf("only the job creator may delete it: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, jobID)
}

func (s *service) List(ctx context.Context, status, location, keyword string) ([]domain.Job, error) {
	f := domain.JobFilter{Location: location, Keyword: keyword}
	if status != "" {
		parsed, err := domain.ParseJobStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = &parsed
	}
	return s.repo.List(ctx, f)
}

func (s *service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.repo.Get(ctx, jobID)
}
