package http

import (
	jwtinfra "github.com/jobdesk/jobdesk-api/internal/infrastructure/jwt"
	"github.com/jobdesk/jobdesk-api/internal/infrastructure/postgres"
	s3infra "github.com/jobdesk/jobdesk-api/internal/infrastructure/s3"
	"github.com/jobdesk/jobdesk-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo        *postgres.UserRepo
	JobRepo         *postgres.JobRepo
	ApplicationRepo *postgres.ApplicationRepo
	ResumeStore     *s3infra.Store
	Mailer          smtp.Mailer
	JWTProvider     *jwtinfra.Provider
}
