package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	"github.com/jobdesk/jobdesk-api/internal/pkg/password"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) MarkVerified(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

// --- helpers ---

func newService(us *mockUserStore, ml *mockMailer, sg *mockSigner) Service {
	return NewService(ServiceDeps{
		UserRepo: us,
		Mailer:   ml,
		Signer:   sg,
		BaseURL:  "http://localhost:3000",
	})
}

func registerReq() domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "applicant",
	}
}

// --- Register tests ---

func TestRegister_MissingFields(t *testing.T) {
	svc := newService(&mockUserStore{}, &mockMailer{}, &mockSigner{})
	req := registerReq()
	req.Email = ""
	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := newService(&mockUserStore{}, &mockMailer{}, &mockSigner{})
	req := registerReq()
	req.Role = "admin"
	_, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestRegister_EmailConflict(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(&domain.User{}, nil)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	_, err := svc.Register(context.Background(), registerReq())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	us.AssertExpectations(t)
}

func TestRegister_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	ml := &mockMailer{}
	ml.On("SendEmail", "alice@example.com", "Verify your email", mock.Anything).Return(nil)

	svc := newService(us, ml, &mockSigner{})
	u, err := svc.Register(context.Background(), registerReq())

	require.NoError(t, err)
	assert.Equal(t, domain.RoleApplicant, u.Role)
	assert.False(t, u.IsVerified)
	require.NotNil(t, u.EmailVerificationToken)
	assert.Len(t, *u.EmailVerificationToken, 64)
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, password.Verify(u.PasswordHash, "password123"))
	us.AssertExpectations(t)
	ml.AssertExpectations(t)
}

func TestRegister_MailLinkEmbedsToken(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("Create", mock.Anything, mock.Anything).Return(nil)

	var sentBody string
	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { sentBody = args.String(2) }).
		Return(nil)

	svc := newService(us, ml, &mockSigner{})
	u, err := svc.Register(context.Background(), registerReq())

	require.NoError(t, err)
	assert.Contains(t, sentBody, "/api/auth/verify-email/"+*u.EmailVerificationToken)
}

func TestRegister_MailFailureStillSucceeds(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)
	us.On("Create", mock.Anything, mock.Anything).Return(nil)

	ml := &mockMailer{}
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc := newService(us, ml, &mockSigner{})
	u, err := svc.Register(context.Background(), registerReq())

	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	ml.AssertExpectations(t)
}

// --- VerifyEmail tests ---

func TestVerifyEmail_InvalidToken(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByVerificationToken", mock.Anything, "bogus").Return(nil, domain.ErrNotFound)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	err := svc.VerifyEmail(context.Background(), "bogus")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestVerifyEmail_HappyPath(t *testing.T) {
	tok := "tok123"
	us := &mockUserStore{}
	us.On("GetByVerificationToken", mock.Anything, tok).
		Return(&domain.User{UserID: "u1", EmailVerificationToken: &tok}, nil)
	us.On("MarkVerified", mock.Anything, "u1").Return(nil)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	require.NoError(t, svc.VerifyEmail(context.Background(), tok))
	us.AssertExpectations(t)
}

func TestVerifyEmail_TokenIsSingleUse(t *testing.T) {
	// After redemption the token is cleared, so the same lookup misses.
	us := &mockUserStore{}
	us.On("GetByVerificationToken", mock.Anything, "used-token").Return(nil, domain.ErrNotFound)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	err := svc.VerifyEmail(context.Background(), "used-token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

// --- Login tests ---

func verifiedUser(t *testing.T) *domain.User {
	t.Helper()
	hash, err := password.Hash("password123")
	require.NoError(t, err)
	return &domain.User{
		UserID:       "u1",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Role:         domain.RoleApplicant,
		IsVerified:   true,
	}
}

func TestLogin_MissingFields(t *testing.T) {
	svc := newService(&mockUserStore{}, &mockMailer{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "alice@example.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestLogin_UnknownEmail(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(nil, domain.ErrNotFound)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_WrongPassword(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(t), nil)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "wrong-password",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLogin_UnverifiedAccountRejected(t *testing.T) {
	u := verifiedUser(t)
	u.IsVerified = false
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(u, nil)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	_, _, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestLogin_HappyPath(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "alice@example.com").Return(verifiedUser(t), nil)

	sg := &mockSigner{}
	sg.On("Sign", "u1", "applicant").Return("signed-token", nil)

	svc := newService(us, &mockMailer{}, sg)
	token, u, err := svc.Login(context.Background(), domain.LoginRequest{
		Email: "alice@example.com", Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, "u1", u.UserID)
	sg.AssertExpectations(t)
}

// --- Profile tests ---

func TestProfile_UserGone(t *testing.T) {
	us := &mockUserStore{}
	us.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	svc := newService(us, &mockMailer{}, &mockSigner{})
	_, err := svc.Profile(context.Background(), "u1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
