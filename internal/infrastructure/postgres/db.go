package postgres

import (
	"errors"
	"fmt"

	"github.com/jobdesk/jobdesk-api/internal/config"
	"github.com/jobdesk/jobdesk-api/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to Postgres. TranslateError is enabled so driver errors
// (duplicate key, foreign key) surface as gorm sentinel errors and can be
// mapped onto the domain taxonomy in one place.
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.AppEnv == "development" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the three tables. The unique indexes declared
// on the models (users.email and applications (applicant_id, job_id)) are
// what make the duplicate checks race-free; the service-level pre-checks
// only exist to produce friendlier messages.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.Application{})
}

// translateErr maps gorm errors onto the domain sentinels.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("record not found: %w", domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("duplicate record: %w", domain.ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("referenced record missing: %w", domain.ErrNotFound)
	default:
		return err
	}
}
