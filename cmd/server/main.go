package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/course-studio/internal/backend"
	"github.com/SAP-F-2025/course-studio/internal/cache"
	"github.com/SAP-F-2025/course-studio/internal/config"
	"github.com/SAP-F-2025/course-studio/internal/handlers"
	"github.com/SAP-F-2025/course-studio/internal/progress"
	"github.com/SAP-F-2025/course-studio/internal/repositories"
	"github.com/SAP-F-2025/course-studio/internal/repositories/postgres"
	"github.com/SAP-F-2025/course-studio/internal/services"
	"github.com/SAP-F-2025/course-studio/internal/utils"
	"github.com/SAP-F-2025/course-studio/internal/validator"
	"github.com/SAP-F-2025/course-studio/pkg"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local persistence
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	gormStore := progress.NewGormStore(db)
	if err := gormStore.AutoMigrate(ctx); err != nil {
		return err
	}
	if err := postgres.AutoMigrate(ctx, db); err != nil {
		return err
	}

	var store progress.Store = gormStore
	var cacheService cache.CacheService = cache.NoopCache{}

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, continuing without cache", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()

		zapLogger, err := newZapLogger(cfg)
		if err != nil {
			return err
		}
		defer zapLogger.Sync()

		cacheService = cache.NewRedisCache(redisClient, zapLogger)
		store = progress.NewCachedStore(store, redisClient, progress.DefaultCacheTTL, logger.Slog())
		logger.Info("Redis cache enabled")
	}
	store = progress.WithSync(store, progress.NoopSyncer{}, logger.Slog())

	// Upstream backend
	client, err := backend.New(backend.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
	}, logger.Slog())
	if err != nil {
		return err
	}
	repo := repositories.NewRepository(client, postgres.NewQuizDraftPostgreSQL(db))

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		return err
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(
		repo,
		store,
		cacheService,
		publisher,
		validator.New(),
		services.ManagerConfig{
			CatalogCacheTTL:        cfg.CatalogCacheTTL,
			UploadProgressInterval: cfg.UploadProgressInterval,
			Now:                    time.Now,
		},
		logger.Slog(),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))
	handlers.NewHandlerManager(serviceManager, logger, []byte(cfg.JWTSecret)).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "backend", cfg.BackendURL, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func newZapLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
