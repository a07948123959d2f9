package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/auth/handlers"
	"galaxy-server/internal/middleware"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/cookies"
)

const secret = "0123456789abcdef0123456789abcdef"

func newCookieHandler() *handlers.CookieHandler {
	return handlers.NewCookieHandler(cookies.Settings{
		Auth:        config.AuthConfig{TokenExpiration: time.Hour},
		FrontendURL: "http://localhost:3000",
	})
}

func TestLoginIssuesCookieUsableByMiddleware(t *testing.T) {
	h := newCookieHandler()
	token, err := auth.GenerateJWT(secret, "operator", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	login := middleware.JWTMiddleware(secret)(http.HandlerFunc(h.Login))
	req := httptest.NewRequest(http.MethodPost, "/api/auth/cookie", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, token, set[0].Value)

	adminOnly := middleware.RequireAdmin(secret, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req = httptest.NewRequest(http.MethodPut, "/api/session/seed", nil)
	req.AddCookie(set[0])
	rec = httptest.NewRecorder()
	adminOnly.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestLoginRequiresAuthentication(t *testing.T) {
	h := newCookieHandler()

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/cookie", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/api/auth/cookie", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newCookieHandler()

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Empty(t, rec.Result().Cookies()[0].Value)
}
