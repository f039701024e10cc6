package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lmittmann/tint"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/anygroup/splitfair/internal/adapters/database/pgsql"
	"github.com/anygroup/splitfair/internal/adapters/events/kafka"
	portsevents "github.com/anygroup/splitfair/internal/core/ports/events"
	portssvc "github.com/anygroup/splitfair/internal/core/ports/services"
	"github.com/anygroup/splitfair/internal/core/services"
	"github.com/anygroup/splitfair/internal/dto"
	"github.com/anygroup/splitfair/internal/handlers"
	"github.com/anygroup/splitfair/internal/middleware"
	"github.com/anygroup/splitfair/internal/platform/metrics"
	"github.com/anygroup/splitfair/pkg/config"
	"github.com/anygroup/splitfair/pkg/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(cfg.IsProduction)
	slog.SetDefault(logger)

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Optional event publisher; the services tolerate a nil publisher.
	var publisher portsevents.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if cerr := kafkaPublisher.Close(); cerr != nil {
				logger.Error("Error closing Kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = kafkaPublisher
		logger.Info("Kafka event publisher enabled", slog.Any("brokers", cfg.KafkaBrokers))
	}

	expenseRepo := pgsql.NewPgxExpenseRepository(dbPool)
	debtRepo := pgsql.NewPgxDebtRepository(dbPool)

	serviceContainer := &portssvc.ServiceContainer{
		Expense: services.NewExpenseService(expenseRepo, debtRepo, publisher, cfg.KafkaExpenseTopic),
		Debt:    services.NewDebtService(debtRepo, publisher, cfg.KafkaSettleTopic),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registerCustomValidators(logger)

	r := gin.New()

	// Global middleware (logging, recovery, CORS, rate limiting, metrics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())
	r.Use(metrics.RequestMetrics())

	if limiterInstance, lerr := newRateLimiter(cfg.RateLimit); lerr != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", lerr.Error()))
		os.Exit(1)
	} else {
		r.Use(middleware.RateLimit(limiterInstance))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newLogger builds the process logger: JSON in production, colorized text in
// development.
func newLogger(isProduction bool) *slog.Logger {
	if isProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.LevelDebug}))
}

// runMigrations applies all pending "up" migrations using a temporary
// database/sql connection over the pgx stdlib driver.
func runMigrations(logger *slog.Logger, databaseURL string) error {
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

// registerCustomValidators wires request-level validators into gin's binding
// engine.
func registerCustomValidators(logger *slog.Logger) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("decimal2", dto.ValidateDecimal2); err != nil {
			logger.Error("Failed to register decimal2 validator", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
}

// newRateLimiter builds an in-memory limiter from a "<limit>-<period>" string.
func newRateLimiter(format string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}
