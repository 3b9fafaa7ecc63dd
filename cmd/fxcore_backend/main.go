package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pennywise/fxcore_app/internal/adapters/database/pgsql"
	"github.com/pennywise/fxcore_app/internal/adapters/rateproviders"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portsproviders "github.com/pennywise/fxcore_app/internal/core/ports/providers"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/core/services"
	"github.com/pennywise/fxcore_app/internal/handlers"
	"github.com/pennywise/fxcore_app/internal/middleware"
	"github.com/pennywise/fxcore_app/internal/platform/config"
	"github.com/pennywise/fxcore_app/internal/platform/scheduler"
	"github.com/pennywise/fxcore_app/pkg/database"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
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

	serviceContainer := buildServices(cfg, dbPool)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if rateLimitMiddleware, ok := buildRateLimiter(cfg, logger); ok {
		r.Use(rateLimitMiddleware)
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, serviceContainer)

	refreshScheduler := startRateRefresh(cfg, serviceContainer.Rate, logger)
	defer refreshScheduler.Stop()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildServices wires repositories, providers, and services into the container the
// HTTP layer consumes.
func buildServices(cfg *config.Config, dbPool *pgxpool.Pool) *portssvc.ServiceContainer {
	rateRepo := pgsql.NewRateRepository(dbPool)
	historyRepo := pgsql.NewFXHistoryRepository(dbPool)

	currencySvc := services.NewCurrencyService(nil, cfg.RestrictedCurrencies)

	var rateProviders []portsproviders.RateProvider
	if cfg.ExchangeRateAPIKey != "" {
		rateProviders = append(rateProviders,
			rateproviders.NewExchangeRateAPIProvider(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, 1, cfg.ProviderTimeout))
	}
	rateProviders = append(rateProviders,
		rateproviders.NewExchangeHostProvider(cfg.ExchangeHostURL, 2, cfg.ProviderTimeout))

	rateSvc := services.NewRateService(rateRepo, currencySvc, rateProviders, cfg.BaseCurrency)
	conversionSvc := services.NewConversionService(rateSvc, currencySvc)
	transferSvc := services.NewTransferService(conversionSvc, currencySvc)

	reconciliationConfig := domain.DefaultReconciliationConfig()
	reconciliationConfig.Frequency = domain.ReconciliationFrequency(cfg.ReconciliationFrequency)
	reconciliationConfig.ThresholdPercentage = cfg.ThresholdPercentage
	reconciliationConfig.SignificantChangeThreshold = cfg.SignificantChangeThreshold
	reconciliationConfig.NotifyOnSignificantChanges = cfg.NotifyOnSignificantChanges
	reconciliationConfig.FreezePeriods = cfg.FreezePeriods
	reconciliationSvc := services.NewReconciliationService(historyRepo, rateSvc, reconciliationConfig)

	return &portssvc.ServiceContainer{
		Currency:       currencySvc,
		Rate:           rateSvc,
		Conversion:     conversionSvc,
		Transfer:       transferSvc,
		Reconciliation: reconciliationSvc,
	}
}

// buildRateLimiter constructs the IP rate limit middleware from the configured rate.
func buildRateLimiter(cfg *config.Config, logger *slog.Logger) (gin.HandlerFunc, bool) {
	if cfg.RateLimit == "" {
		return nil, false
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT value, rate limiting disabled", slog.String("error", err.Error()))
		return nil, false
	}
	instance := limiter.New(limitermemory.NewStore(), rate)
	return middleware.RateLimit(instance), true
}

// startRateRefresh launches the background job that keeps today's rates populated.
func startRateRefresh(cfg *config.Config, rateSvc portssvc.RateSvcFacade, logger *slog.Logger) *scheduler.Scheduler {
	job := func(ctx context.Context) error {
		_, err := rateSvc.FetchTodaysRates(middleware.WithLogger(ctx, logger))
		return err
	}

	s := scheduler.New("rate-refresh", cfg.RateRefreshInterval, job, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	s.Start(ctx)
	return s
}

// runMigrations applies pending database migrations from the migrations directory.
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

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
