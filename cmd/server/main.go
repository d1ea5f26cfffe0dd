package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commquest/commquest-backend/internal/cache"
	"github.com/commquest/commquest-backend/internal/config"
	"github.com/commquest/commquest-backend/internal/handlers"
	"github.com/commquest/commquest-backend/internal/models"
	"github.com/commquest/commquest-backend/internal/repositories/postgres"
	"github.com/commquest/commquest-backend/internal/services"
	"github.com/commquest/commquest-backend/internal/utils"
	"github.com/commquest/commquest-backend/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server exited with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Module{},
		&models.Section{},
		&models.Assessment{},
		&models.Question{},
		&models.Choice{},
		&models.Response{},
		&models.Result{},
	); err != nil {
		return err
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
		cacheService = cache.NewNoopCache()
	} else {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, logger)
	}

	slogLogger := utils.ToSlogLogger(logger)
	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	ctx := context.Background()
	generator, err := services.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, logger)
	if err != nil {
		return err
	}
	if generator != nil {
		defer generator.Close()
	}

	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()

	serviceManager := services.NewServiceManager(services.ManagerConfig{
		Repo:      repo,
		Cache:     cacheService,
		Publisher: publisher,
		Generator: generator,
		Logger:    logger,
		Validator: validator,
		JWTSecret: cfg.JWTSecret,
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(handlers.CORSMiddleware(cfg.FrontendOrigin))

	handlerManager := handlers.NewHandlerManager(serviceManager, cfg, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}
