package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/openbooks/books_backend/internal/adapters/database/pgsql"
	portssvc "github.com/openbooks/books_backend/internal/core/ports/services"
	"github.com/openbooks/books_backend/internal/core/services"
	"github.com/openbooks/books_backend/internal/handlers"
	"github.com/openbooks/books_backend/internal/middleware"
	"github.com/openbooks/books_backend/pkg/config"
	"github.com/openbooks/books_backend/pkg/database"
)

// @title Books Backend API
// @version 1.0
// @description Double-entry bookkeeping backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
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

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowOrigins, ",")
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	r.Use(middleware.NoCache())

	svcContainer := buildServices(dbPool, cfg)
	handlers.RegisterRoutes(r, cfg, svcContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories into the service container.
func buildServices(dbPool *pgxpool.Pool, cfg *config.Config) *portssvc.ServiceContainer {
	repos := pgsql.NewRepositoryProvider(dbPool)

	accountSvc := services.NewAccountService(repos.AccountRepo)
	statsSvc := services.NewStatsService(repos.StatsRepo, cfg.StatsTTL)
	voucherSvc := services.NewVoucherService(repos.VoucherRepo, accountSvc, repos.FinancialYearRepo, statsSvc)
	reportingSvc := services.NewReportingService(repos.AccountRepo, repos.ReportingRepo)
	fySvc := services.NewFinancialYearService(repos.FinancialYearRepo)
	changeSvc := services.NewPendingChangeService(repos.PendingChangeRepo)

	return &portssvc.ServiceContainer{
		Account:       accountSvc,
		Voucher:       voucherSvc,
		Reporting:     reportingSvc,
		FinancialYear: fySvc,
		PendingChange: changeSvc,
		Stats:         statsSvc,
	}
}

// runMigrations applies all pending up migrations from the migrations
// directory over a temporary stdlib connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

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
