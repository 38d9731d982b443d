package setup

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/pracor/pracor/internal/database"
	"github.com/pracor/pracor/internal/database/migrations"
	"github.com/pracor/pracor/internal/redis"
	"github.com/pracor/pracor/internal/setup/config"
	"github.com/pracor/pracor/internal/setup/telemetry"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"
)

// ErrPendingMigrations is returned when the schema is behind and the operator declined to migrate.
var ErrPendingMigrations = errors.New("database migrations are pending, run `db migrate` first")

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config     // Application configuration
	Logger       *zap.Logger        // Main application logger
	DBLogger     *zap.Logger        // Database-specific logger
	DB           database.Client    // Database connection pool
	RedisManager *redis.Manager     // Redis connection manager
	LogManager   *telemetry.Manager // Log management system
	tracing      bool               // Whether spans are exported
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Tracing is configured before the loggers so error logs can become spans
	tracing := telemetry.ConfigureTracing(&cfg.Common.Telemetry, serviceType, config.RepositoryVersion)

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug, tracing)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	// Redis manager provides connection pools for various subsystems
	redisManager := redis.NewManager(&cfg.Common.Redis, logger)

	// Initialize database with migration check
	db, err := checkAndRunMigrations(ctx, &cfg.Common.PostgreSQL, dbLogger)
	if err != nil {
		redisManager.Close()
		return nil, err
	}

	logger.Info("Application initialized",
		zap.Stringer("service", serviceType),
		zap.String("session", logManager.GetCurrentSessionDir()),
		zap.Bool("tracing", tracing))

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       logger,
		DBLogger:     dbLogger.Named("database"),
		DB:           db,
		RedisManager: redisManager,
		LogManager:   logManager,
		tracing:      tracing,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(ctx context.Context) {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Flush pending spans
	if s.tracing {
		if err := telemetry.ShutdownTracing(ctx); err != nil {
			log.Printf("Failed to shutdown tracing: %v", err)
		}
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}

// checkAndRunMigrations asks the operator before applying pending migrations.
func checkAndRunMigrations(ctx context.Context, cfg *config.PostgreSQL, dbLogger *zap.Logger) (database.Client, error) {
	tempDB, err := database.NewConnection(ctx, cfg, dbLogger, false)
	if err != nil {
		return nil, err
	}

	migrator := migrate.NewMigrator(tempDB.DB(), migrations.Migrations)

	ms, err := migrator.MigrationsWithStatus(ctx)
	if err != nil {
		_ = tempDB.Close()
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}

	if len(ms.Unapplied()) == 0 {
		return tempDB, nil
	}

	log.Println("Database migrations are pending. Would you like to run them now? (y/N)")

	var response string
	_, _ = fmt.Scanln(&response)

	if response != "y" && response != "Y" {
		_ = tempDB.Close()
		return nil, ErrPendingMigrations
	}

	if err := database.Migrate(ctx, tempDB.DB(), dbLogger); err != nil {
		_ = tempDB.Close()
		return nil, err
	}

	return tempDB, nil
}
