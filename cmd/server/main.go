// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/pitmstr/internal/auth"
	"github.com/festy23/pitmstr/internal/config"
	dbConfig "github.com/festy23/pitmstr/internal/database/config"
	"github.com/festy23/pitmstr/internal/database/database"
	"github.com/festy23/pitmstr/internal/database/migrate"
	"github.com/festy23/pitmstr/internal/datastore"
	"github.com/festy23/pitmstr/internal/datastore/airtable"
	"github.com/festy23/pitmstr/internal/datastore/sqlstore"
	eventRouter "github.com/festy23/pitmstr/internal/event/router"
	"github.com/festy23/pitmstr/internal/health"
	"github.com/festy23/pitmstr/internal/identity"
	leaderboardRouter "github.com/festy23/pitmstr/internal/leaderboard/router"
	"github.com/festy23/pitmstr/internal/lookup"
	"github.com/festy23/pitmstr/internal/middleware"
	referenceRouter "github.com/festy23/pitmstr/internal/reference/router"
	schoolRouter "github.com/festy23/pitmstr/internal/school/router"
	statisticsRouter "github.com/festy23/pitmstr/internal/statistics/router"
	studentRouter "github.com/festy23/pitmstr/internal/student/router"
	teamRouter "github.com/festy23/pitmstr/internal/team/router"
	userRouter "github.com/festy23/pitmstr/internal/user/router"
	webhookRouter "github.com/festy23/pitmstr/internal/webhook/router"
	"github.com/festy23/pitmstr/pkg/logger"
	"github.com/festy23/pitmstr/pkg/metrics"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) error {
	gin.SetMode(cfg.GinMode)
	m := metrics.NewManager(metrics.WithGoCollectors())

	raw, closeStore, err := openStore(ctx, cfg.Data, log)
	if err != nil {
		return err
	}
	defer closeStore()
	store := datastore.Instrument(raw, m, log)

	lookups := lookup.New(store, m, log)
	if err := lookups.Warm(ctx); err != nil {
		// reference tables load lazily on the first request instead
		log.Warnw("lookup warm-up failed", "error", err)
	}

	policy, err := auth.LoadPolicy(cfg.Auth.PolicyPath)
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(cfg.Auth.JWTPublicKey, cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}
	if !verifier.Enabled() {
		log.Warnw("session verification disabled; all requests are anonymous")
	}

	loc, err := cfg.Events.Location()
	if err != nil {
		return err
	}

	r := gin.New()
	r.Use(
		requestid.New(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.Metrics(m),
		middleware.CORS(cfg.Server.CORSOrigins),
		middleware.Authenticate(verifier, log),
	)

	r.GET("/health", health.New(store, log).Check)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	eventRouter.RegisterRoutes(api, store, lookups, policy, loc, log)
	leaderboardRouter.RegisterRoutes(api, store, lookups, m, log)
	teamRouter.RegisterRoutes(api, store, lookups, policy, log)
	schoolRouter.RegisterRoutes(api, store, lookups, log)
	studentRouter.RegisterRoutes(api, store, policy, log)
	statisticsRouter.RegisterRoutes(api, store, log)
	referenceRouter.RegisterRoutes(api, lookups, log)
	webhookRouter.RegisterRoutes(api, cfg.Auth.WebhookSecret, store, m, log)

	idp, err := identity.New(identity.Config{SecretKey: cfg.Auth.ClerkSecretKey, BaseURL: cfg.Auth.ClerkAPIURL}, log)
	switch {
	case err == nil:
		userRouter.RegisterRoutes(api, idp, store, policy, log)
	case errors.Is(err, identity.ErrNotConfigured):
		log.Warnw("CLERK_SECRET_KEY not set; user management routes disabled")
	default:
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", srv.Addr, "backend", cfg.Data.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Infow("server stopped")
	return nil
}

// openStore builds the configured record store and a function releasing it.
func openStore(ctx context.Context, cfg config.DataConfig, log *zap.SugaredLogger) (datastore.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		db, err := database.OpenPostgres(ctx, dbConfig.LoadConfigFromEnv(), log)
		if err != nil {
			return nil, nil, err
		}
		if err := migrate.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return sqlstore.New(db, log), func() { _ = database.Close(db) }, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlstore.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("failed to migrate sqlite: %w", err)
		}
		return sqlstore.New(db, log), func() { _ = database.Close(db) }, nil

	default:
		client, err := airtable.New(airtable.Config{
			APIKey:  cfg.AirtableAPIKey,
			BaseID:  cfg.AirtableBaseID,
			BaseURL: cfg.AirtableBaseURL,
			Timeout: cfg.HTTPTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	}
}
