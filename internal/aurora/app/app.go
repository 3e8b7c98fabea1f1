package app

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

	"github.com/aussiebroadwan/aurora/internal/aurora/cache"
	httpapi "github.com/aussiebroadwan/aurora/internal/aurora/http"
	"github.com/aussiebroadwan/aurora/internal/aurora/service"
	"github.com/aussiebroadwan/aurora/internal/aurora/store"
	"github.com/aussiebroadwan/aurora/internal/aurora/store/drivers/sqlite"
	"github.com/aussiebroadwan/aurora/pkg/idx"
	"github.com/aussiebroadwan/aurora/pkg/jwtx"
	"github.com/aussiebroadwan/aurora/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application wires the invitation service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	cache    cache.StatsCache
	closers  []func() error
	verifier *jwtx.HS256

	// Services
	invitationService *service.InvitationService
	expirySweeper     *service.ExpirySweeper

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "aurora",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	verifier, err := jwtx.NewHS256([]byte(cfg.JWTSecret), cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token verifier: %w", err)
	}
	app.verifier = verifier

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initCache(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the routed handler, for tests that serve it directly.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.expirySweeper.Start()

	app.logger.Info("aurora starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"stats_cache", app.cache.Name(),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.expirySweeper.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down aurora...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.expirySweeper.Stop()

	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			app.logger.Error("error closing stats cache", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("aurora stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache connects the stats cache when one is configured.
func (app *Application) initCache(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.cache = cache.Nop{}
		app.logger.Info("stats cache disabled")
		return nil
	}

	rc, err := cache.NewRedis(ctx, app.cfg.RedisURL, app.cfg.StatsCacheTTL)
	if err != nil {
		return fmt.Errorf("failed to connect stats cache: %w", err)
	}
	app.cache = rc
	app.closers = append(app.closers, rc.Close)

	app.logger.Info("stats cache enabled", "backend", rc.Name(), "ttl", app.cfg.StatsCacheTTL)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.invitationService = &service.InvitationService{
		Store: app.db,
		Cache: app.cache,
		Notifier: &service.LogNotifier{
			AppURL: app.cfg.AppURL,
			Expiry: app.cfg.InvitationExpiry,
		},
		IDs:             idx.NewGenerator(),
		Expiry:          app.cfg.InvitationExpiry,
		TokenSize:       app.cfg.TokenLength,
		DefaultPageSize: app.cfg.DefaultPageSize,
		MaxPageSize:     app.cfg.MaxPageSize,
	}

	app.expirySweeper = service.NewExpirySweeper(
		app.db,
		app.logger,
		app.cfg.ExpirySweepInterval,
	)
	app.expirySweeper.Cache = app.cache
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.cache,
		app.logger,
	)

	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
