package auth

import (
	"context"
	"net/http"
	"strings"

	"reelshare/internal/api"
	"reelshare/internal/domain"
	"reelshare/internal/logging"
)

// UserLookup finds the account a token was issued to.
type UserLookup interface {
	UserByID(ctx context.Context, id string) (domain.User, error)
}

type contextKey struct{}

// ClaimsFromContext returns the claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}

// ContextWithClaims is exported for handler tests.
func ContextWithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// Middleware rejects requests without a valid bearer token for a user that
// still exists.
func Middleware(jwtManager *JWTManager, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := api.NewResponseWriter(w, r)

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				rw.Unauthorized("Unauthorized: No token provided")
				return
			}

			claims, err := jwtManager.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Token verification failed")
				rw.Unauthorized("Unauthorized: Invalid or expired token")
				return
			}

			user, err := users.UserByID(r.Context(), claims.UserID)
			if err != nil || !strings.EqualFold(user.Email, claims.Email) {
				rw.Unauthorized("Unauthorized: User not found")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
