package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/pkg/id"
	"github.com/jobdesk/jobdesk-api/internal/pkg/password"
	pkgtoken "github.com/jobdesk/jobdesk-api/internal/pkg/token"
	"github.com/jobdesk/jobdesk-api/internal/pkg/validate"
)

type Service interface {
	// Register creates an unverified user and dispatches the verification
	// email. A failed dispatch is logged, not surfaced: the user row is
	// already committed and the link can be re-sent out of band.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	// VerifyEmail redeems a single-use verification token.
	VerifyEmail(ctx context.Context, token string) error
	// Login exchanges credentials for a signed access token. Unverified
	// accounts are rejected even with correct credentials.
	Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

type userStore interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*domain.User, error)
	MarkVerified(ctx context.Context, userID string) error
}

type mailSender interface {
	SendEmail(to, subject, body string) error
}

type tokenSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	users   userStore
	mailer  mailSender
	signer  tokenSigner
	baseURL string
}

type ServiceDeps struct {
	UserRepo userStore
	Mailer   mailSender
	Signer   tokenSigner
	BaseURL  string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:   deps.UserRepo,
		mailer:  deps.Mailer,
		signer:  deps.Signer,
		baseURL: deps.BaseURL,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	verifyToken, err := pkgtoken.NewVerificationToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u := &domain.User{
		UserID:                 id.New(),
		Name:                   req.Name,
		Email:                  req.Email,
		PasswordHash:           hash,
		Role:                   role,
		IsVerified:             false,
		EmailVerificationToken: &verifyToken,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	// Fire-and-forget with respect to the committed user row.
	link := fmt.Sprintf("%s/api/auth/verify-email/%s", s.baseURL, verifyToken)
	body := "Click the link to verify your email: " + link
	if err := s.mailer.SendEmail(u.Email, "Verify your email", body); err != nil {
		slog.Error("failed to send verification email", "user_id", u.UserID, "err", err)
	}
	return u, nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) error {
	u, err := s.users.GetByVerificationToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired token: %w", domain.ErrBadRequest)
	}
	return s.users.MarkVerified(ctx, u.UserID)
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (string, *domain.User, error) {
	if err := validate.Struct(req); err != nil {
		return "", nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !password.Verify(u.PasswordHash, req.Password) {
		return "", nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if !u.IsVerified {
		return "", nil, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	accessToken, err := s.signer.Sign(u.UserID, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return accessToken, u, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.Get(ctx, userID)
}
