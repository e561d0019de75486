package domain

import (
	"fmt"
	"time"
)

// Role determines which operations a user may invoke.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleCompany   Role = "company"
)

// ParseRole validates a role string received at the API boundary.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleApplicant, RoleCompany:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q: %w", s, ErrBadRequest)
	}
}

type User struct {
	UserID       string `gorm:"column:user_id;primaryKey;size:36" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:200;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
	IsVerified   bool   `gorm:"default:false" json:"is_verified"`

	// Single-use token for the email verification flow. Cleared on redemption.
	EmailVerificationToken *string    `gorm:"size:200;index" json:"-"`
	TokenExpiration        *time.Time `json:"-"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`

	Jobs         []Job         `gorm:"foreignKey:CreatedBy" json:"-"`
	Applications []Application `gorm:"foreignKey:ApplicantID" json:"-"`
}

func (User) TableName() string { return "users" }

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
