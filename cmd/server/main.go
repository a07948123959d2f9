package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"galaxy-server/internal/middleware"
	"galaxy-server/internal/server"
	"galaxy-server/internal/session"
	"galaxy-server/internal/shared/config"
	"galaxy-server/internal/shared/logger"
	"galaxy-server/internal/shared/redis"

	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	logger.Init()

	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.GlobalConfig
	log := slog.With("component", "main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	var store session.Store = session.NewMemoryStore()
	if redisClient != nil {
		store = session.NewRedisStore(redisClient, cfg.Galaxy.StateKey)
	}

	sess := session.New(
		session.WithStore(store),
		session.WithLogger(slog.Default()),
	)
	if err := bindSession(ctx, sess, cfg.Galaxy); err != nil {
		return err
	}

	routes := server.NewRoutes(sess, cfg, slog.Default())
	mux := routes.Setup()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Enabled:           cfg.RateLimit.Enabled,
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.BurstSize,
		TrustProxy:        cfg.RateLimit.TrustProxy,
	})
	defer rateLimiter.Stop()

	cors := middleware.NewCORS(cfg.Frontend)

	var handler http.Handler = mux
	handler = rateLimiter.Middleware(handler)
	handler = cors.Middleware(handler)
	handler = middleware.RequestLog(slog.Default())(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Galaxy server starting",
			"port", cfg.Server.Port,
			"environment", cfg.Server.Environment,
			"store", store.Name(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Server stopped")
	return nil
}

// bindSession restores the persisted galaxy when there is one. Otherwise it
// binds the configured seed, loading the generator config file first if set.
func bindSession(ctx context.Context, sess *session.Session, cfg config.GalaxyConfig) error {
	log := slog.With("component", "main", "operation", "bind_session")

	restored, err := sess.Restore(ctx)
	if err != nil {
		log.Warn("Failed to restore session, starting from configuration", "error", err)
	}
	if restored {
		return nil
	}

	if err := sess.SetSeed(ctx, cfg.Seed); err != nil {
		return fmt.Errorf("failed to bind galaxy seed: %w", err)
	}

	if cfg.ConfigPath != "" {
		if _, err := sess.LoadConfig(ctx, cfg.ConfigPath); err != nil {
			return fmt.Errorf("failed to load galaxy config: %w", err)
		}
	}

	state := sess.State()
	log.Info("Galaxy bound from configuration",
		"seed", state.Seed,
		"config_path", cfg.ConfigPath,
		"nearby_max_radius", state.Config.NearbyMaxRadius,
	)
	return nil
}
