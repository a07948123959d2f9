package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

type contextKey string

const (
	UserContextKey      contextKey = "user"
	RequestIDContextKey contextKey = "request_id"
)

// JWTMiddleware authenticates requests with a bearer token, falling back to
// the auth_token cookie.
func JWTMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "jwt",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing JWT authentication")

			token := tokenFromRequest(r)
			if token == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := auth.ValidateJWT(secret, token)
			if err != nil {
				response.Error(w, r, logger, errors.Unauthorized("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			logger.Debug("JWT authentication successful",
				"subject", claims.Subject,
				"role", claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}

	if cookie, err := r.Cookie(cookies.AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func GetUserFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(UserContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
