package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/murkaverse/gatekeeper/internal/gatekeeper/http"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/service"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store"
	"github.com/murkaverse/gatekeeper/internal/gatekeeper/store/drivers/sqlite"
	"github.com/murkaverse/gatekeeper/pkg/slogx"
	"github.com/sethvargo/go-retry"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	// callbackMinInterval is the per-user gap enforced between interactive
	// taps.
	callbackMinInterval = 300 * time.Millisecond
)

// Application encapsulates the gatekeeper service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	challenges       *service.ChallengeGenerator
	lobbyService     *service.LobbyService
	admissionService *service.AdmissionService
	settingsService  *service.SettingsService
	adminService     *service.AdminService
	limiter          *service.RateLimiter
	engine           *service.Engine

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "gatekeeper",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("gatekeeper starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"group_chat_id", app.cfg.GroupChatID,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down gatekeeper...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("gatekeeper stopped")
	return nil
}

// initDatabase opens the sqlite store and applies migrations. The open is
// retried with exponential backoff so a slow volume mount doesn't kill the
// process on boot.
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)

	backoff := retry.WithMaxRetries(3, retry.NewExponential(2*time.Second))
	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return retry.RetryableError(err)
		}
		if err := db.Ping(ctx); err != nil {
			_ = db.Close()
			return retry.RetryableError(err)
		}
		app.db = db
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.challenges = service.NewChallengeGenerator()

	app.lobbyService = service.NewLobbyService(app.db, app.challenges, service.LobbyConfig{
		MaxAttempts: app.cfg.MaxAttempts,
		Cooldown:    app.cfg.Cooldown,
		VerifyTTL:   app.cfg.VerifyTTL,
		InviteLink:  app.cfg.InviteLink,
	})

	app.settingsService = &service.SettingsService{
		Store:           app.db,
		LockdownDefault: app.cfg.LockdownDefault,
		StrictDefault:   app.cfg.StrictModeDefault,
	}

	app.admissionService = service.NewAdmissionService(
		app.db,
		app.settingsService,
		app.lobbyService,
		app.cfg.GroupChatID,
	)

	app.adminService = &service.AdminService{
		Store:    app.db,
		Settings: app.settingsService,
		AdminIDs: app.cfg.AdminIDs,
	}

	app.limiter = service.NewRateLimiter(callbackMinInterval)

	app.engine = &service.Engine{
		Lobby:     app.lobbyService,
		Admission: app.admissionService,
		Admin:     app.adminService,
		Limiter:   app.limiter,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.Engine = app.engine
	router.Lobby = app.lobbyService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
