package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/shared/errors"
	"galaxy-server/internal/shared/response"
)

// CookieHandler moves a validated bearer token into the HttpOnly auth
// cookie read by JWTMiddleware.
type CookieHandler struct {
	settings cookies.Settings
}

func NewCookieHandler(settings cookies.Settings) *CookieHandler {
	return &CookieHandler{settings: settings}
}

type cookieResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

// Login must run behind JWTMiddleware.
func (h *CookieHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "auth_cookie_login", "remote_addr", r.RemoteAddr)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	claims := middleware.GetUserFromContext(r)
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if claims == nil || !ok {
		response.Error(w, r, logger, errors.Unauthorized("bearer token required"))
		return
	}

	cookies.SetAuthCookie(w, h.settings, strings.TrimSpace(token))

	logger.Info("Auth cookie issued", "subject", claims.Subject, "role", claims.Role)
	response.Success(w, http.StatusOK, cookieResponse{Subject: claims.Subject, Role: claims.Role})
}

func (h *CookieHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "logout", "remote_addr", r.RemoteAddr)
	logger.Debug("Logout requested")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	cookies.ClearAuthCookie(w, h.settings)
	w.WriteHeader(http.StatusNoContent)

	logger.Info("Auth cookie cleared")
}
