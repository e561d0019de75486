package middleware

import (
	"context"
	"net/http"

	"github.com/jobdesk/jobdesk-api/internal/domain"
)

const identityKey contextKey = "identity"

// UserGetter loads a user by id; the role check reads the role from the
// store rather than trusting the token's copy.
type UserGetter interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// RequireRole returns middleware that resolves the authenticated user from
// the token subject and allows the request only when the stored role is one
// of allowedRoles. A token whose subject no longer exists is treated the
// same as a missing token.
func RequireRole(users UserGetter, allowedRoles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			u, err := users.Get(r.Context(), claims.UserID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if u.Role == role {
					ctx := context.WithValue(r.Context(), identityKey, u)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}

// UserFromContext extracts the resolved user injected by RequireRole.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(identityKey).(*domain.User)
	return u, ok
}
