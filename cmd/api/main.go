package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jobdesk/jobdesk-api/internal/config"
	jwtinfra "github.com/jobdesk/jobdesk-api/internal/infrastructure/jwt"
	"github.com/jobdesk/jobdesk-api/internal/infrastructure/postgres"
	s3infra "github.com/jobdesk/jobdesk-api/internal/infrastructure/s3"
	"github.com/jobdesk/jobdesk-api/internal/infrastructure/smtp"
	transporthttp "github.com/jobdesk/jobdesk-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	db, err := postgres.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider: %v", err)
	}

	// S3 store for resume uploads.
	s3Client := s3infra.NewClient(cfg)
	resumeStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for verification emails.
	mailer := smtp.NewMailer(cfg)

	deps := &transporthttp.Deps{
		UserRepo:        postgres.NewUserRepo(db),
		JobRepo:         postgres.NewJobRepo(db),
		ApplicationRepo: postgres.NewApplicationRepo(db),
		ResumeStore:     resumeStore,
		Mailer:          mailer,
		JWTProvider:     jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
