package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mediforge/config"
	deliveryHttp "mediforge/internal/delivery/http"
	"mediforge/internal/delivery/http/handler"
	"mediforge/internal/delivery/http/middleware"
	domainRepo "mediforge/internal/domain/repository"
	"mediforge/internal/infrastructure/cache"
	"mediforge/internal/infrastructure/logger"
	"mediforge/internal/repository"
	"mediforge/internal/service"
	"mediforge/internal/usecase"
	"mediforge/pkg/token"
	"mediforge/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	RedisClient *redis.Client
	SessionRepo domainRepo.SessionRepository
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg *config.Config) (*App, error) {
	log := logger.NewLogger(cfg)
	app := &App{Config: cfg, Log: log}
	log.Info("Configuration loaded successfully")

	sessionRepo, err := app.newSessionRepository()
	if err != nil {
		return nil, err
	}
	app.SessionRepo = sessionRepo

	server, err := initializeServer(cfg, log, sessionRepo)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

func (app *App) newSessionRepository() (domainRepo.SessionRepository, error) {
	cfg := app.Config

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		app.Log.Info("Redis connected successfully")
		return repository.NewRedisSessionRepository(redisClient, cfg.View.SessionTTL, cfg.Navigation.Timeout, app.Log), nil
	case config.SessionStoreMemory, "":
		return repository.NewMemorySessionRepository(cfg.View.SessionTTL, cfg.Navigation.Timeout, app.Log), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, sessionRepo domainRepo.SessionRepository) (*http.Server, error) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	catalogRepo, err := repository.NewEmbeddedCatalogRepository(customValidator)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	patientRepo := repository.NewFixturePatientRepository()

	// Initialize services
	auditService := service.NewAuditService(log)
	tokenService := token.NewSessionTokenService(cfg.Session.Secret, cfg.View.SessionTTL)

	// Initialize usecases
	landingUsecase := usecase.NewLandingUsecase(cfg, log, catalogRepo, sessionRepo, auditService)
	catalogUsecase := usecase.NewCatalogUsecase(cfg, catalogRepo)
	patientListUsecase := usecase.NewPatientListUsecase(log, patientRepo, auditService, cfg.View.PatientLoadDelay, nil)

	// Initialize handlers
	landingHandler := handler.NewLandingHandler(landingUsecase, customValidator, log)
	sessionHandler := handler.NewSessionHandler(landingUsecase, customValidator)
	catalogHandler := handler.NewCatalogHandler(catalogUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientListUsecase, cfg.CORS.AllowedOrigins, log)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(tokenService, landingUsecase, cfg.Session.CookieName, cfg.IsProduction(), log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		landingHandler,
		sessionHandler,
		catalogHandler,
		patientHandler,
		sessionMiddleware,
		corsMiddleware,
		loggingMiddleware,
		recoveryMiddleware,
	)

	return &http.Server{
		Addr:    net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler: router.Setup(),
	}, nil
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (app *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on %s", app.Server.Addr)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	return app.Shutdown()
}

// Shutdown stops accepting requests, waits for in-flight ones up to the
// configured timeout and releases all resources.
func (app *App) Shutdown() error {
	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.App.ShutdownTimeout)
	defer cancel()

	err := app.Server.Shutdown(ctx)
	if err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return err
}

// Close releases the session store and Redis connection
func (app *App) Close() {
	if app.SessionRepo != nil {
		if err := app.SessionRepo.Close(); err != nil {
			app.Log.Warnf("Failed to close session repository: %+v", err)
		}
	}

	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Log.Warnf("Failed to close Redis client: %+v", err)
		}
	}
}
