package postgres

import (
	"context"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"gorm.io/gorm"
)

// JobRepo provides typed Postgres operations for the jobs table.
type JobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) *JobRepo {
	return &JobRepo{db: db}
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	return translateErr(r.db.WithContext(ctx).Create(j).Error)
}

func (r *JobRepo) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	var j domain.Job
	err := r.db.WithContext(ctx).First(&j, "job_id = ?", jobID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &j, nil
}

func (r *JobRepo) Update(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return translateErr(r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("job_id = ?", jobID).
		Updates(updates).Error)
}

// Delete removes the job row; dependent applications go with it through the
// ON DELETE CASCADE constraint.
func (r *JobRepo) Delete(ctx context.Context, jobID string) error {
	return translateErr(r.db.WithContext(ctx).
		Delete(&domain.Job{}, "job_id = ?", jobID).Error)
}

// List returns published jobs newest-first. Draft jobs never appear here,
// even when the filter names them explicitly.
func (r *JobRepo) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("status <> ?", domain.JobStatusDraft)
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.Keyword != "" {
		kw := "%" + f.Keyword + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", kw, kw)
	}
	var jobs []domain.Job
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, translateErr(err)
	}
	return jobs, nil
}
