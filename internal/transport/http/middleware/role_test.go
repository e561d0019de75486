package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jobdesk/jobdesk-api/internal/domain"
	jwtinfra "github.com/jobdesk/jobdesk-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserGetter struct{ mock.Mock }

func (m *mockUserGetter) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func withClaims(req *http.Request, claims *jwtinfra.Claims) *http.Request {
	ctx := context.WithValue(req.Context(), claimsKey, claims)
	return req.WithContext(ctx)
}

func TestRequireRole_NoClaimsInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireRole(&mockUserGetter{}, domain.RoleCompany)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_UserGone(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(nil, domain.ErrNotFound)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{UserID: "u1"})
	rr := httptest.NewRecorder()
	RequireRole(users, domain.RoleCompany)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	users.AssertExpectations(t)
}

func TestRequireRole_WrongRole(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleApplicant}, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{UserID: "u1"})
	rr := httptest.NewRecorder()
	RequireRole(users, domain.RoleCompany)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_StoredRoleWins(t *testing.T) {
	// The token claims a role the store does not back up.
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleApplicant}, nil)

	claims := &jwtinfra.Claims{UserID: "u1", Role: string(domain.RoleCompany)}
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), claims)
	rr := httptest.NewRecorder()
	RequireRole(users, domain.RoleCompany)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_CorrectRole_InjectsIdentity(t *testing.T) {
	users := &mockUserGetter{}
	stored := &domain.User{UserID: "u1", Role: domain.RoleCompany}
	users.On("Get", mock.Anything, "u1").Return(stored, nil)

	var gotUser *domain.User
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{UserID: "u1"})
	rr := httptest.NewRecorder()
	RequireRole(users, domain.RoleCompany)(capture).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, gotUser)
	assert.Equal(t, stored, gotUser)
}

func TestRequireRole_MultipleAllowedRoles(t *testing.T) {
	users := &mockUserGetter{}
	users.On("Get", mock.Anything, "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleApplicant}, nil)

	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{UserID: "u1"})
	rr := httptest.NewRecorder()
	RequireRole(users, domain.RoleCompany, domain.RoleApplicant)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
