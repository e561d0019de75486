package domain

import (
	"fmt"
	"time"
)

// ApplicationStatus tracks where an application sits in a company's pipeline.
type ApplicationStatus string

const (
	ApplicationStatusApplied   ApplicationStatus = "Applied"
	ApplicationStatusReviewed  ApplicationStatus = "Reviewed"
	ApplicationStatusInterview ApplicationStatus = "Interview"
	ApplicationStatusRejected  ApplicationStatus = "Rejected"
	ApplicationStatusHired     ApplicationStatus = "Hired"
)

// ParseApplicationStatus validates an application status string received at
// the API boundary.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(s) {
	case ApplicationStatusApplied, ApplicationStatusReviewed, ApplicationStatusInterview,
		ApplicationStatusRejected, ApplicationStatusHired:
		return ApplicationStatus(s), nil
	default:
		return "", fmt.Errorf("invalid application status %q: %w", s, ErrBadRequest)
	}
}

// Application links an applicant to a job. The (applicant_id, job_id) pair is
// unique so a second apply for the same job fails at the storage layer even
// under concurrent requests.
type Application struct {
	ApplicationID string            `gorm:"column:application_id;primaryKey;size:36" json:"id"`
	ApplicantID   string            `gorm:"size:36;not null;uniqueIndex:idx_applicant_job" json:"applicant_id"`
	JobID         string            `gorm:"size:36;not null;uniqueIndex:idx_applicant_job" json:"job_id"`
	ResumeLink    string            `gorm:"size:500;not null" json:"resume_link"`
	CoverLetter   *string           `gorm:"size:2000" json:"cover_letter,omitempty"`
	Status        ApplicationStatus `gorm:"size:20;not null;default:'Applied'" json:"status"`
	AppliedAt     time.Time         `gorm:"autoCreateTime" json:"applied_at"`

	Applicant *User `gorm:"foreignKey:ApplicantID;references:UserID" json:"-"`
	Job       *Job  `gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Application) TableName() string { return "applications" }

type ApplyRequest struct {
	JobID       string  `json:"job_id" validate:"required"`
	ResumeLink  string  `json:"resume_link" validate:"required,max=500"`
	CoverLetter *string `json:"cover_letter" validate:"omitempty,max=2000"`
}
