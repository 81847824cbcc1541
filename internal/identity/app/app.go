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

	httpapi "github.com/pulseboard/pulseboard/internal/identity/http"
	"github.com/pulseboard/pulseboard/internal/identity/service"
	"github.com/pulseboard/pulseboard/internal/identity/store"
	"github.com/pulseboard/pulseboard/internal/identity/store/drivers/sqlite"
	"github.com/pulseboard/pulseboard/pkg/cryptox"
	"github.com/pulseboard/pulseboard/pkg/jwtx"
	"github.com/pulseboard/pulseboard/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the identity service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	signer   jwtx.Signer
	verifier jwtx.Verifier

	// Services
	registrarService  *service.RegistrarService
	credentialService *service.CredentialService
	sessionService    *service.SessionService
	bootstrapService  *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "identity-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initSigning(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	// Seed the bootstrap admin before accepting traffic.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.bootstrapService.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	app.logger.Info("identity service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
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
	app.logger.Info("shutting down identity service...")

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

	app.logger.Info("identity service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
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

// initSigning sets up the session signer and verifier from the process-wide
// secret. The secret is loaded exactly once here; nothing mutates it at
// runtime.
func (app *Application) initSigning() error {
	secret := app.cfg.SessionSecret
	if secret == "" {
		// Ephemeral mode: sessions won't survive a restart.
		secret = cryptox.MustGenerateSecret(cryptox.SecretSize256)
		app.logger.Warn("IDENTITY_SESSION_SECRET not set, generated ephemeral secret; " +
			"sessions will not survive restarts")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to initialize session signer: %w", err)
	}

	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256([]byte(secret), app.cfg.Issuer)
	return nil
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.registrarService = &service.RegistrarService{
		Store: app.db,
		Cost:  app.cfg.BcryptCost,
	}

	app.credentialService = &service.CredentialService{Store: app.db}

	app.sessionService = &service.SessionService{
		Signer:   app.signer,
		Verifier: app.verifier,
		Issuer:   app.cfg.Issuer,
		TTL:      app.cfg.SessionTTL,
	}

	app.bootstrapService = &service.BootstrapService{
		Registrar: app.registrarService,
		Store:     app.db,
		Email:     app.cfg.AdminEmail,
		Password:  app.cfg.AdminPassword,
		Name:      app.cfg.AdminName,
	}
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.RegistrarService = app.registrarService
	router.CredentialService = app.credentialService
	router.SessionService = app.sessionService
	router.RequestTimeout = app.cfg.RequestTimeout
	router.SecureCookies = app.cfg.Env != "dev"
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
