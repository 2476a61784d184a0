package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/domain"
	"github.com/taskhive/taskhive/pkg/tenant"
)

type contextKey string

// UserKey is the context key for the authenticated user.
const UserKey contextKey = "user"

// Auth creates the authentication gate. It runs before any handler:
// bearer token extraction, token decoding, and identity resolution, in
// that order. On success the resolved user and their organization are
// bound to the request context; on any failure the request ends here
// with a single undifferentiated 401 and no tenant context is ever
// bound, so a handler can only run with the caller's organization in
// place.
func Auth(tokens *auth.TokenService, identity *auth.IdentityService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				unauthorized(w, logger, r, err)
				return
			}

			userID, err := tokens.Decode(tokenString)
			if err != nil {
				unauthorized(w, logger, r, err)
				return
			}

			user, org, err := identity.Resolve(r.Context(), userID)
			if err != nil {
				unauthorized(w, logger, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = tenant.WithOrganization(ctx, org)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from the Authorization header. An
// absent header or a non-Bearer scheme is a missing credential.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.ErrMissingCredential
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", domain.ErrMissingCredential
	}
	return parts[1], nil
}

// unauthorized writes the one externally observable authentication
// failure. The specific cause is logged for diagnostics but never put in
// the response, so the endpoint cannot be used to probe which usernames
// or tokens exist.
func unauthorized(w http.ResponseWriter, logger *slog.Logger, r *http.Request, err error) {
	if logger != nil {
		logger.Debug("authentication failed",
			"path", r.URL.Path,
			"method", r.Method,
			"reason", err,
		)
	}
	httputil.Error(w, http.StatusUnauthorized, "unauthorized")
}

// GetUser extracts the authenticated user from the request context.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
