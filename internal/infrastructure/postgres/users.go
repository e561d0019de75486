package postgres

import (
	"context"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"gorm.io/gorm"
)

// UserRepo provides typed Postgres operations for the users table.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	return translateErr(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepo) Get(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "user_id = ?", userID).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// GetByEmail matches the email exactly as stored; no case folding.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (r *UserRepo) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "email_verification_token = ?", token).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

// MarkVerified flips is_verified and clears the token in one update, so the
// token cannot be redeemed twice.
func (r *UserRepo) MarkVerified(ctx context.Context, userID string) error {
	return translateErr(r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"is_verified":              true,
			"email_verification_token": nil,
		}).Error)
}
