package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obstetrics-record-service/config"
	deliveryHttp "obstetrics-record-service/internal/delivery/http"
	"obstetrics-record-service/internal/delivery/http/handler"
	"obstetrics-record-service/internal/delivery/http/middleware"
	domainRepo "obstetrics-record-service/internal/domain/repository"
	"obstetrics-record-service/internal/infrastructure/cache"
	"obstetrics-record-service/internal/infrastructure/database"
	"obstetrics-record-service/internal/repository"
	"obstetrics-record-service/internal/service"
	"obstetrics-record-service/internal/usecase"
	"obstetrics-record-service/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config        *config.Config
	Log           *logrus.Logger
	DB            *gorm.DB
	RedisClient   *redis.Client
	RecordRepo    domainRepo.PatientRecordRepository
	SchemaVersion int

	PatientRecordUsecase usecase.PatientRecordUsecase
	AuditLogUsecase      usecase.AuditLogUsecase

	Server *http.Server
}

// Load reads configuration, opens the record store and builds the use cases.
// It is shared by every subcommand.
func Load(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	if err := app.openStore(ctx); err != nil {
		return nil, err
	}

	// Audit trail lives next to the records on SQL stores only
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewNoopAuditService()
	if app.DB != nil {
		auditService = service.NewAuditService(app.DB, app.Log, auditLogRepo)
	}

	app.PatientRecordUsecase = usecase.NewPatientRecordUsecase(app.Log, app.RecordRepo, auditService, cfg.App.PageSize)
	app.AuditLogUsecase = usecase.NewAuditLogUsecase(app.DB, app.Log, auditLogRepo)

	return app, nil
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app, err := Load(ctx)
	if err != nil {
		return nil, err
	}

	app.Server = app.initializeServer()
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("Unknown LOG_LEVEL %q, using info", cfg.Level)
		return log
	}
	log.SetLevel(level)
	return log
}

// openStore connects the configured backend and brings its schema up to date.
func (app *App) openStore(ctx context.Context) error {
	cfg := app.Config

	switch cfg.Store.Driver {
	case config.StoreDriverSQLite, config.StoreDriverPostgres:
		var (
			db  *gorm.DB
			err error
		)
		if cfg.Store.Driver == config.StoreDriverSQLite {
			db, err = database.NewSQLiteConnection(cfg.SQLite)
		} else {
			db, err = database.NewPostgresConnection(cfg.DB)
		}
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		app.Log.Infof("Database connected successfully (%s)", cfg.Store.Driver)

		version, err := database.Migrate(db, app.Log)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		app.SchemaVersion = version
		app.RecordRepo = repository.NewPatientRecordRepository(db, app.Log)

	case config.StoreDriverRedis:
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Redis connected successfully")

		repo, err := repository.NewPatientRecordRedisRepository(ctx, redisClient, cfg.Redis.KeyPrefix, app.Log)
		if err != nil {
			return fmt.Errorf("failed to open redis record store: %w", err)
		}
		app.SchemaVersion = database.SchemaVersion
		app.RecordRepo = repo

	default:
		app.Log.Warn("No record store configured, records will not be persisted")
		app.RecordRepo = repository.NewUnavailableRepository(app.Log)
	}

	return nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize handlers
	patientRecordHandler := handler.NewPatientRecordHandler(app.PatientRecordUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(app.AuditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(app.Config.App.CORSOrigin)
	requestIDMiddleware := middleware.NewRequestIDMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(app.Log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientRecordHandler, auditLogHandler, corsMiddleware, requestIDMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", app.Config.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes the record store and with it the database or redis connection
func (app *App) Close() {
	if app.RecordRepo != nil {
		if err := app.RecordRepo.Close(); err != nil {
			app.Log.Warnf("Failed to close record store: %+v", err)
		}
	}
}
