package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"auth-system/docs"
	"auth-system/internal/config"
	"auth-system/internal/database"
	"auth-system/internal/event"
	"auth-system/internal/handler"
	"auth-system/internal/metrics"
	"auth-system/internal/middleware"
	"auth-system/internal/repository"
	"auth-system/internal/router"
	"auth-system/internal/service"
)

type App struct {
	server       *http.Server
	logger       *slog.Logger
	cleanupFuncs []func()
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.JWTSecretFallback {
		logger.Warn("JWT_SECRET is not set; using the development fallback secret", "env", cfg.Env)
	}

	a := &App{logger: logger}

	var (
		userRepo  repository.UserRepository
		auditRepo repository.AuditRepository
		health    *handler.HealthHandler
	)

	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; data is lost on restart")
		userRepo = repository.NewMemoryUserRepository()
		auditRepo = repository.NewMemoryAuditRepository()
		health = handler.NewHealthHandler(nil)
	default:
		if cfg.AutoMigrate {
			if err := migrateUp(cfg.DatabaseURL); err != nil {
				return nil, err
			}
		}

		logger.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, db.Close)

		userRepo = repository.NewPostgresUserRepository(db.Pool)
		auditRepo = repository.NewPostgresAuditRepository(db.Pool)
		health = handler.NewHealthHandler(db)
	}

	store, err := service.NewCredentialStore(userRepo, service.NewBcryptHasher(cfg.BcryptCost))
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		a.cleanup()
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}

	bus := event.NewBus(logger)
	auditService := service.NewAuditService(auditRepo, logger)
	auditService.Start(bus)
	// Stop the audit consumer before the pool closes.
	a.cleanupFuncs = append([]func(){auditService.Stop}, a.cleanupFuncs...)

	var (
		recorder service.Recorder
		obs      router.Observability
	)
	if cfg.MetricsEnabled {
		m := metrics.New()
		recorder = m
		obs = m
	}

	authService := service.NewAuthService(store, tokens, bus, recorder, logger)

	appRouter := router.New(cfg,
		middleware.NewAuthMiddleware(authService, handler.WriteError),
		router.Handlers{
			Auth:   handler.NewAuthHandler(authService),
			Docs:   handler.NewDocsHandler(docs.OpenAPI, cfg.APIPrefix),
			Health: health,
		},
		obs,
	)

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

// Handler exposes the router for in-process tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		a.cleanup()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(shutdownCtx)
	a.cleanup()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	a.logger.Info("server stopped")
	return nil
}

func (a *App) cleanup() {
	for _, fn := range a.cleanupFuncs {
		fn()
	}
	a.cleanupFuncs = nil
}

func migrateUp(databaseURL string) error {
	migrator, err := database.NewMigrator(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer func() { _ = migrator.Close() }()

	if err := migrator.Up(); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
