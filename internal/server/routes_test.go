package server_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/auth"
	"galaxy-server/internal/server"
	"galaxy-server/internal/session"
	"galaxy-server/internal/shared/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func TestRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := session.New(session.WithLogger(logger))
	mux := server.NewRoutes(s, &config.Config{
		Auth:     config.AuthConfig{JWTSecret: secret, TokenExpiration: time.Hour},
		Frontend: config.FrontendConfig{URL: "http://localhost:3000"},
	}, logger).Setup()

	token, err := auth.GenerateJWT(secret, "operator", auth.RoleAdmin, time.Hour)
	require.NoError(t, err)

	send := func(method, target, body string, admin bool) int {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		if admin {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/server/health", "", false))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/galaxy", "", false))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/galaxy/structure?max_stars=1", "", false))
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "/api/systems/1", "", false))

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPut, "/api/session/seed", `{"seed": 1}`, false))
	assert.Equal(t, http.StatusOK, send(http.MethodPut, "/api/session/seed", `{"seed": 1}`, true))
	assert.Equal(t, int64(1), s.Seed())

	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPut, "/api/session/config", `{"nearby_max_radius": 8}`, false))
	assert.Equal(t, http.StatusOK, send(http.MethodPut, "/api/session/config", `{"nearby_max_radius": 8}`, true))
	assert.Equal(t, 8.0, s.NearbyMaxRadius())

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/api/auth/cookie", "", true))
	assert.Equal(t, http.StatusUnauthorized, send(http.MethodPost, "/api/auth/cookie", "", false))
	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "/api/auth/logout", "", false))

	assert.Equal(t, http.StatusNotFound, send(http.MethodGet, "/api/planets", "", false))
}
