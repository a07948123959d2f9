package server

import (
	"log/slog"
	"net/http"

	authHandlers "galaxy-server/internal/auth/handlers"
	"galaxy-server/internal/galaxy"
	galaxyHandlers "galaxy-server/internal/galaxy/handlers"
	"galaxy-server/internal/middleware"
	serverHandlers "galaxy-server/internal/server/handlers"
	"galaxy-server/internal/session"
	sessionHandlers "galaxy-server/internal/session/handlers"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/cookies"
	"galaxy-server/internal/spatial"
	spatialHandlers "galaxy-server/internal/spatial/handlers"
	"galaxy-server/internal/system"
	systemHandlers "galaxy-server/internal/system/handlers"
)

type Routes struct {
	session *session.Session
	config  *config.Config
	logger  *slog.Logger
}

func NewRoutes(s *session.Session, cfg *config.Config, logger *slog.Logger) *Routes {
	return &Routes{
		session: s,
		config:  cfg,
		logger:  logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.session)
	galaxyHandler := galaxyHandlers.NewGalaxyHandler(galaxy.NewService(r.session, r.logger))
	spatialHandler := spatialHandlers.NewSpatialHandler(spatial.NewService(r.session, r.logger))
	systemHandler := systemHandlers.NewSystemHandler(system.NewProjector(r.session, r.logger))
	sessionHandler := sessionHandlers.NewSessionHandler(r.session)
	cookieHandler := authHandlers.NewCookieHandler(cookies.Settings{
		Auth:        r.config.Auth,
		FrontendURL: r.config.Frontend.URL,
	})

	secret := r.config.Auth.JWTSecret
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(secret, h)
	}

	// Public endpoints
	mux.Handle("/api/server/health", healthHandler)
	mux.HandleFunc("/api/galaxy", galaxyHandler.GetOverview)
	mux.HandleFunc("/api/galaxy/structure", spatialHandler.GetStructure)
	mux.HandleFunc("/api/galaxy/nearby", spatialHandler.GetNearbyStars)
	mux.HandleFunc("/api/systems/{id}", systemHandler.GetStarSystem)
	mux.HandleFunc("/api/session", sessionHandler.GetSession)

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("/api/session/seed", admin(sessionHandler.SetSeed))
	mux.Handle("/api/session/config", admin(sessionHandler.UpdateConfig))
	mux.Handle("/api/session/config/load", admin(sessionHandler.LoadConfig))

	// Auth cookie endpoints
	mux.Handle("/api/auth/cookie", middleware.JWTMiddleware(secret)(http.HandlerFunc(cookieHandler.Login)))
	mux.HandleFunc("/api/auth/logout", cookieHandler.Logout)

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/galaxy", "/api/galaxy/structure", "/api/galaxy/nearby", "/api/systems/{id}", "/api/session"},
		"admin_endpoints", []string{"/api/session/seed", "/api/session/config", "/api/session/config/load"},
		"auth_endpoints", []string{"/api/auth/cookie", "/api/auth/logout"},
	)

	return mux
}
