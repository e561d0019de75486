package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jobdesk/jobdesk-api/internal/application/auth"
	"github.com/jobdesk/jobdesk-api/internal/application/job"
	"github.com/jobdesk/jobdesk-api/internal/application/jobapp"
	"github.com/jobdesk/jobdesk-api/internal/application/resume"
	"github.com/jobdesk/jobdesk-api/internal/config"
	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/transport/http/handler"
	appmiddleware "github.com/jobdesk/jobdesk-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	requireApplicant := appmiddleware.RequireRole(deps.UserRepo, domain.RoleApplicant)
	requireCompany := appmiddleware.RequireRole(deps.UserRepo, domain.RoleCompany)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo: deps.UserRepo,
		Mailer:   deps.Mailer,
		Signer:   deps.JWTProvider,
		BaseURL:  cfg.AppBaseURL,
	})
	jobSvc := job.NewService(deps.JobRepo)
	resumeSvc := resume.NewService(deps.ResumeStore, cfg.ResumeURLTTL)
	appSvc := jobapp.NewService(jobapp.ServiceDeps{
		ApplicationRepo: deps.ApplicationRepo,
		JobRepo:         deps.JobRepo,
		ResumeCleaner:   resumeSvc,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	jobH := handler.NewJobHandler(jobSvc)
	appH := handler.NewApplicationHandler(appSvc)
	resumeH := handler.NewResumeHandler(resumeSvc)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthH.Ping)

		r.Route("/auth", func(r chi.Router) {
			// ── Public (rate-limited) ────────────────────────────────────────
			r.With(sensitiveRL.Limit).Post("/register", authH.Register)
			r.With(sensitiveRL.Limit).Get("/verify-email/{token}", authH.VerifyEmail)
			r.With(sensitiveRL.Limit).Post("/login", authH.Login)

			// ── Authenticated ────────────────────────────────────────────────
			r.With(authMw).Get("/me", authH.Me)
		})

		r.Route("/jobs", func(r chi.Router) {
			// ── Public reads ─────────────────────────────────────────────────
			r.Get("/", jobH.List)
			r.Get("/{id}", jobH.Get)

			// ── Company-only mutations ───────────────────────────────────────
			r.Group(func(r chi.Router) {
				r.Use(authMw, requireCompany)
				r.Post("/", jobH.Create)
				r.Put("/{id}", jobH.Update)
				r.Delete("/{id}", jobH.Delete)
			})
		})

		r.Route("/applications", func(r chi.Router) {
			r.Use(authMw)

			// Applicant side
			r.Group(func(r chi.Router) {
				r.Use(requireApplicant)
				r.Post("/", appH.Apply)
				r.Get("/me", appH.ListMine)
				r.Delete("/{id}", appH.Withdraw)
				r.Post("/resume", resumeH.Upload)
			})

			// Company side
			r.Group(func(r chi.Router) {
				r.Use(requireCompany)
				r.Get("/job/{job_id}", appH.ListForJob)
				r.Put("/{id}", appH.UpdateStatus)
			})
		})
	})

	return r
}
