package postgres

import (
	"context"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"gorm.io/gorm"
)

// ApplicationRepo provides typed Postgres operations for the applications table.
type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

// Create inserts the application. A duplicate (applicant_id, job_id) pair
// hits the unique index and comes back as domain.ErrConflict, which closes
// the double-apply race without any table lock.
func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	return translateErr(r.db.WithContext(ctx).Create(a).Error)
}

// Get loads the application with its job, which callers need for the
// job-ownership check on status updates.
func (r *ApplicationRepo) Get(ctx context.Context, applicationID string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		First(&a, "application_id = ?", applicationID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *ApplicationRepo) GetByApplicantAndJob(ctx context.Context, applicantID, jobID string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).
		First(&a, "applicant_id = ? AND job_id = ?", applicantID, jobID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &a, nil
}

func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return apps, nil
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]domain.Application, error) {
	var apps []domain.Application
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return apps, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, applicationID string, status domain.ApplicationStatus) error {
	return translateErr(r.db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("application_id = ?", applicationID).
		Update("status", status).Error)
}

func (r *ApplicationRepo) Delete(ctx context.Context, applicationID string) error {
	return translateErr(r.db.WithContext(ctx).
		Delete(&domain.Application{}, "application_id = ?", applicationID).Error)
}
