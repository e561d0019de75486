package domain

import (
	"fmt"
	"time"
)

// JobStatus is the publication state of a job posting. Draft jobs are
// private to their creator and never appear in listings.
type JobStatus string

const (
	JobStatusDraft  JobStatus = "Draft"
	JobStatusOpen   JobStatus = "Open"
	JobStatusClosed JobStatus = "Closed"
)

// ParseJobStatus validates a job status string received at the API boundary.
func ParseJobStatus(s string) (JobStatus, error) {
	switch JobStatus(s) {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed:
		return JobStatus(s), nil
	default:
		return "", fmt.Errorf("invalid job status %q: %w", s, ErrBadRequest)
	}
}

type Job struct {
	JobID       string    `gorm:"column:job_id;primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Location    *string   `gorm:"size:255" json:"location,omitempty"`
	Status      JobStatus `gorm:"size:20;not null;default:'Draft'" json:"status"`
	CreatedBy   string    `gorm:"size:36;not null;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	Creator      *User         `gorm:"foreignKey:CreatedBy;references:UserID" json:"-"`
	Applications []Application `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Job) TableName() string { return "jobs" }

type CreateJobRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// UpdateJobRequest carries a partial update: nil fields are left unchanged.
type UpdateJobRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Status      *string `json:"status"`
}

// JobFilter narrows public job listings. Location and Keyword are
// case-insensitive substring matches; Keyword spans title and description.
type JobFilter struct {
	Status   *JobStatus
	Location string
	Keyword  string
}
