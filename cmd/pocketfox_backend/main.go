package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pocketfox/pocketfox_backend/internal/adapters/diagnostics"
	"github.com/pocketfox/pocketfox_backend/internal/adapters/rates"
	"github.com/pocketfox/pocketfox_backend/internal/core/services"
	"github.com/pocketfox/pocketfox_backend/internal/handlers"
	"github.com/pocketfox/pocketfox_backend/internal/middleware"
	"github.com/pocketfox/pocketfox_backend/internal/platform/config"
	"github.com/pocketfox/pocketfox_backend/internal/repositories/database/pgsql"
	"github.com/pocketfox/pocketfox_backend/pkg/database"
)

// @title PocketFox Backend API
// @version 1.0
// @description Personal finance backend: accounts, transactions and balance reconciliation.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateFetcher := rates.NewHTTPFetcher(cfg.RateAPIBaseURL)
	diagnosticsSink := diagnostics.NewSink(cfg.PosthogAPIKey, logger)
	defer diagnosticsSink.Close()

	repoProvider := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repoProvider, rateFetcher, diagnosticsSink, cfg.RateCacheTTL)

	// Bring forward any transactions that became due while the server was down.
	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if cleared, err := serviceContainer.Transaction.ClearDueTransactions(startupCtx, time.Now().UTC()); err != nil {
		logger.Warn("Startup clear-due pass failed", slog.String("error", err.Error()))
	} else if cleared > 0 {
		logger.Info("Startup clear-due pass applied transactions", slog.Int("cleared", cleared))
	}
	cancel()

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
