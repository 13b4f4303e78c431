// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/jobboard/internal/admin"
	"github.com/carterperez-dev/jobboard/internal/application"
	"github.com/carterperez-dev/jobboard/internal/auth"
	"github.com/carterperez-dev/jobboard/internal/config"
	"github.com/carterperez-dev/jobboard/internal/core"
	"github.com/carterperez-dev/jobboard/internal/health"
	"github.com/carterperez-dev/jobboard/internal/identity"
	"github.com/carterperez-dev/jobboard/internal/job"
	"github.com/carterperez-dev/jobboard/internal/message"
	"github.com/carterperez-dev/jobboard/internal/middleware"
	"github.com/carterperez-dev/jobboard/internal/profile"
	"github.com/carterperez-dev/jobboard/internal/server"
)

const (
	drainDelay    = 5 * time.Second
	sweepInterval = 10 * time.Minute
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	if cfg.Database.Migrate {
		version, migErr := core.RunMigrations(cfg.Database.URL)
		if migErr != nil {
			return migErr
		}
		logger.Info("migrations applied", "version", version)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	if err := ensureKeyPair(cfg, logger); err != nil {
		return err
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized", "algorithm", "ES256")

	profileRepo := profile.NewRepository(db.DB)
	resolver := identity.NewResolver(profileRepo)
	loader := identity.NewLoader(profileRepo)

	profileSvc := profile.NewService(profileRepo)
	profileHandler := profile.NewHandler(profileSvc)

	authRepo := auth.NewRepository(db.DB)
	authSvc := auth.NewService(
		authRepo,
		jwtManager,
		resolver,
		loader,
		profileRepo,
		redis.Client,
		logger,
	)
	authHandler := auth.NewHandler(authSvc)

	jobRepo := job.NewRepository(db.DB)
	jobSvc := job.NewService(jobRepo, profileRepo)
	jobHandler := job.NewHandler(jobSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(applicationRepo, jobRepo)
	applicationHandler := application.NewHandler(applicationSvc)

	messageRepo := message.NewRepository(db.DB)
	messageSvc := message.NewService(messageRepo)
	messageHandler := message.NewHandler(messageSvc)

	healthHandler := health.NewHandler(db, redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Analytics:  admin.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	// Role-aware limits need the role claim, so the per-role limiter sits
	// behind the authenticator on every protected route.
	authn := middleware.Authenticator(jwtManager)
	roleLimiter := middleware.RoleRateLimiter(
		redis.Client,
		middleware.DefaultRoleLimits,
	)
	authenticator := func(next http.Handler) http.Handler {
		return authn(roleLimiter(next))
	}
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		profileHandler.RegisterRoutes(r, authenticator)
		jobHandler.RegisterRoutes(r, authenticator)
		applicationHandler.RegisterRoutes(r, authenticator)
		messageHandler.RegisterRoutes(r, authenticator)

		profileHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		jobHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	go runMaintenance(ctx, logger, jobSvc, authRepo)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// ensureKeyPair generates a signing key pair on first run in development.
// Production deployments must provision keys out of band.
func ensureKeyPair(cfg *config.Config, logger *slog.Logger) error {
	if !cfg.IsDevelopment() {
		return nil
	}

	if _, err := os.Stat(cfg.JWT.PrivateKeyPath); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	logger.Warn("signing keys not found, generating development key pair",
		"private_key", cfg.JWT.PrivateKeyPath,
		"public_key", cfg.JWT.PublicKeyPath,
	)

	return auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath)
}

// runMaintenance sweeps postings past their deadline and prunes refresh
// sessions long past expiry.
func runMaintenance(
	ctx context.Context,
	logger *slog.Logger,
	jobs *job.Service,
	sessions auth.Repository,
) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		expired, err := jobs.ExpireOverdue(ctx)
		if err != nil {
			logger.Error("job expiry sweep failed", "error", err)
		} else if expired > 0 {
			logger.Info("expired overdue jobs", "count", expired)
		}

		pruned, err := sessions.DeleteExpiredSessions(ctx)
		if err != nil {
			logger.Error("session prune failed", "error", err)
		} else if pruned > 0 {
			logger.Info("pruned expired sessions", "count", pruned)
		}
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
