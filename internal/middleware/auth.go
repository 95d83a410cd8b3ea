package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"planets-api/internal/auth"
	"planets-api/internal/shared/errors"
	"planets-api/internal/shared/response"
)

type contextKey string

const UserContextKey contextKey = "user"

// RequireAuth rejects requests without a valid bearer token and injects
// the token claims into the request context.
func RequireAuth(issuer *auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "auth",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			token, err := bearerToken(r)
			if err != nil {
				response.Error(w, r, logger, err)
				return
			}

			claims, err := issuer.Validate(token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			logger.Debug("Bearer token accepted", "user_id", claims.UserID, "email", claims.Email)

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the claims injected by RequireAuth, or nil.
func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.Unauthorized("authentication required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.Unauthorized("invalid authorization header")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.Unauthorized("invalid authorization header")
	}

	return token, nil
}
