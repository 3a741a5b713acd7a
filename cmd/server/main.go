package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/musicraft-academy/aptitude-service/internal/audio"
	"github.com/musicraft-academy/aptitude-service/internal/cache"
	"github.com/musicraft-academy/aptitude-service/internal/config"
	"github.com/musicraft-academy/aptitude-service/internal/events"
	"github.com/musicraft-academy/aptitude-service/internal/handlers"
	"github.com/musicraft-academy/aptitude-service/internal/itembank"
	"github.com/musicraft-academy/aptitude-service/internal/repositories"
	"github.com/musicraft-academy/aptitude-service/internal/services"
	"github.com/musicraft-academy/aptitude-service/internal/session"
	"github.com/musicraft-academy/aptitude-service/internal/utils"
	"github.com/musicraft-academy/aptitude-service/internal/validator"
	"github.com/musicraft-academy/aptitude-service/pkg"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.IsProduction() {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	bank := itembank.Default()
	if err := bank.Validate(); err != nil {
		logger.LogError(err, "Item bank configuration is invalid")
		os.Exit(1)
	}

	store, err := buildStore(cfg, logger)
	if err != nil {
		logger.LogError(err, "Failed to initialize attempt store")
		os.Exit(1)
	}

	ctx := context.Background()
	snapshot, err := store.Load(ctx)
	if err != nil {
		logger.LogError(err, "Failed to hydrate attempt snapshot")
		os.Exit(1)
	}
	sess := session.Restore(bank, snapshot.Current, snapshot.History)
	logger.Info("Attempt snapshot hydrated",
		"history_count", len(snapshot.History),
		"has_current", snapshot.Current != nil)

	cacheSvc := buildCache(cfg, logger)
	publisher := buildPublisher(cfg, logger)
	defer publisher.Close()

	v := validator.New()
	controller := audio.NewController(audio.NopPlayer{}, 0, slogger)

	exporter := services.NewExportService(slogger)
	notifier := services.NewNotificationService(publisher, slogger)
	attempts := services.NewAttemptService(bank, sess, store, cacheSvc, exporter, notifier, controller, slogger, v)

	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))
	hm := handlers.NewHandlerManager(bank, attempts, exporter, cacheSvc, cfg.ShareBaseURL, logger)
	hm.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Aptitude service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.LogError(err, "HTTP server failed")
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.LogError(err, "Graceful shutdown failed")
	}
}

func buildStore(cfg *config.Config, logger utils.Logger) (repositories.AttemptStore, error) {
	if cfg.DatabaseURL != "" {
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("Using postgres attempt store")
		return repositories.NewPostgresStore(db)
	}
	logger.Info("Using file attempt store", "path", cfg.SnapshotPath)
	return repositories.NewFileStore(cfg.SnapshotPath), nil
}

func buildCache(cfg *config.Config, logger utils.Logger) cache.CacheService {
	if cfg.RedisURL == "" {
		logger.Info("Redis not configured, share summaries are served uncached")
		return cache.NopCache{}
	}
	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.LogError(err, "Redis unavailable, falling back to uncached summaries")
		return cache.NopCache{}
	}
	return cache.NewRedisCache(client, logger)
}

func buildPublisher(cfg *config.Config, logger utils.Logger) events.ResultPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("Kafka not configured, result submissions are recorded locally only")
		return &events.MockResultPublisher{}
	}
	publisher, err := events.NewKafkaResultPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.ResultTopic,
		Logger:       utils.ToSlogLogger(logger),
	})
	if err != nil {
		logger.LogError(err, "Kafka unavailable, result submissions are recorded locally only")
		return &events.MockResultPublisher{}
	}
	return publisher
}
