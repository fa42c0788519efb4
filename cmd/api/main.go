// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/azzedinedj/winner-product-inno/internal/account"
	"github.com/azzedinedj/winner-product-inno/internal/admin"
	"github.com/azzedinedj/winner-product-inno/internal/auth"
	"github.com/azzedinedj/winner-product-inno/internal/config"
	"github.com/azzedinedj/winner-product-inno/internal/core"
	"github.com/azzedinedj/winner-product-inno/internal/health"
	"github.com/azzedinedj/winner-product-inno/internal/middleware"
	"github.com/azzedinedj/winner-product-inno/internal/scan"
	"github.com/azzedinedj/winner-product-inno/internal/server"
	"github.com/azzedinedj/winner-product-inno/internal/storage"
	"github.com/azzedinedj/winner-product-inno/migrations"
)

const (
	drainDelay = 5 * time.Second
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

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	var (
		db        *core.Database
		directory account.Directory
	)

	switch cfg.Storage.Driver {
	case "postgres":
		db, err = core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		logger.Info("database connected",
			"max_open_conns", cfg.Database.MaxOpenConns,
			"max_idle_conns", cfg.Database.MaxIdleConns,
		)

		if err = db.Migrate(ctx, migrations.FS); err != nil {
			return err
		}

		pgDir := account.NewPostgresDirectory(db.DB)
		if err = pgDir.SeedAdmin(ctx, cfg.Seed.AdminEmail); err != nil {
			return err
		}
		directory = pgDir

	default:
		var slot storage.Slot
		if cfg.Storage.DocumentKey != "" {
			slot = storage.NewRedisSlot(redis.Client, cfg.Storage.DocumentKey)
		} else {
			slot = storage.NewFileSlot(cfg.Storage.DocumentFile)
		}

		directory, err = account.OpenDocumentDirectory(
			ctx,
			slot,
			cfg.Seed.AdminEmail,
		)
		if err != nil {
			return err
		}
	}
	logger.Info("account directory ready", "driver", cfg.Storage.Driver)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	accountSvc := account.NewService(directory, cfg.Plans)
	accountHandler := account.NewHandler(accountSvc)

	authSvc := auth.NewService(accountSvc, jwtManager, redis.Client)
	authHandler := auth.NewHandler(authSvc)

	scanSvc := scan.NewService(
		accountSvc,
		scan.NewWebhookClient(cfg.Scan),
		scan.NewAIClient(cfg.Scan),
		redis.Client,
		cfg.Scan.CacheTTL,
	)
	scanHandler := scan.NewHandler(scanSvc)

	checks := []health.NamedChecker{
		{Name: "redis", Checker: redis},
	}
	if db != nil {
		checks = append(
			checks,
			health.NamedChecker{Name: "database", Checker: db},
		)
	}
	healthHandler := health.NewHandler(checks...)

	adminCfg := admin.HandlerConfig{
		Accounts:   accountSvc,
		RedisStats: redis.PoolStats,
		RedisPing:  redis.Ping,
	}
	if db != nil {
		adminCfg.DBStats = db.Stats
		adminCfg.DBPing = db.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

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

	authenticator := middleware.Authenticator(authSvc)
	optionalAuth := middleware.OptionalAuth(authSvc)
	adminOnly := middleware.RequireAdmin

	planLimiter := middleware.PlanRateLimiter(
		redis.Client,
		middleware.DefaultPlans,
		func(ctx context.Context, userID string) string {
			acct, lookupErr := accountSvc.Get(ctx, userID)
			if lookupErr != nil || acct.Plan == nil {
				return ""
			}
			return *acct.Plan
		},
	)
	// Scans are the expensive path, so they carry the plan-tiered budget
	// on top of the global limiter.
	scanAuth := func(next http.Handler) http.Handler {
		return authenticator(planLimiter(next))
	}

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		accountHandler.RegisterRoutes(r, authenticator, optionalAuth)
		scanHandler.RegisterRoutes(r, scanAuth)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

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

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error("database close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
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
