package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/redis/go-redis/v9"

	"github.com/shenikar/geo_tracking_system/internal/config"
	"github.com/shenikar/geo_tracking_system/internal/engine"
	v1 "github.com/shenikar/geo_tracking_system/internal/handler/http/v1"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/presence"
	"github.com/shenikar/geo_tracking_system/internal/registry"
	"github.com/shenikar/geo_tracking_system/internal/repository"
	"github.com/shenikar/geo_tracking_system/internal/separation"
	"github.com/shenikar/geo_tracking_system/internal/service"
	"github.com/shenikar/geo_tracking_system/internal/watcher"
	"github.com/shenikar/geo_tracking_system/internal/webhook"
	"github.com/shenikar/geo_tracking_system/pkg/logger"
	"github.com/shenikar/geo_tracking_system/pkg/postgres"
	redisclient "github.com/shenikar/geo_tracking_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/geo_tracking_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Geo Tracking System API
// @version 1.0
// @description This is a Geo Tracking System API server.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// startLocationWatcher подключает наблюдатель собственной позиции к каналу
// Redis и прогоняет каждое обновление через сервис. Если канал не задан,
// наблюдение не запускается.
func startLocationWatcher(ctx context.Context, trackingService service.TrackingService, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *watcher.Watcher {
	if cfg.PositionChannel == "" {
		log.Info("Position channel is not configured, location watching is disabled")
		return nil
	}

	source := presence.NewRedisPositionSource(redisClient, log, cfg.PositionChannel)
	w := watcher.New(source, log)
	w.Start(
		func(point models.Coordinate, _ time.Time) {
			if _, err := trackingService.ProcessLocation(ctx, cfg.TrackedEntityID, point.Latitude, point.Longitude); err != nil {
				log.WithError(err).Error("Failed to process watched location update")
			}
			if _, err := trackingService.CheckSeparation(ctx, cfg.TrackedEntityID, point.Latitude, point.Longitude, cfg.SeparationMaxDistanceMeters); err != nil {
				log.WithError(err).Error("Failed to run separation check for watched location")
			}
		},
		func(err error) {
			if errors.Is(err, watcher.ErrPermissionDenied) {
				log.Warn("Position source reported permission denied, location watching stays inactive")
				return
			}
			log.WithError(err).Warn("Position source error")
		},
	)
	log.Infof("Location watcher started on channel %s", cfg.PositionChannel)
	return w
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Ядро геотрекинга: реестр геозон, движок событий, монитор разделения
	fenceRegistry := registry.New()
	alertEngine := engine.New(fenceRegistry, cfg.DwellThreshold, log)
	separationMonitor := separation.New(cfg.SeparationCooldown, log)

	// Журналирование всех событий движка
	alertEngine.Subscribe(func(event models.AlertEvent) {
		log.WithFields(logrus.Fields{
			"kind":      event.Kind,
			"entity_id": event.EntityID,
			"fence_id":  event.FenceID,
		}).Info("Geofence alert emitted")
	})

	// Хранилище позиций участников группы, наполняется из Redis Pub/Sub
	peerStore := presence.NewStore()
	peerSubscriber := presence.NewSubscriber(redisClient, peerStore, log, cfg.PresenceChannel)
	peerSubscriber.Start(ctx)

	// Инициализация репозиториев
	alertRepo := repository.NewAlertRepository(dbpool)

	// Инициализация сервисов
	trackingService := service.NewTrackingService(fenceRegistry, alertEngine, separationMonitor, peerStore, alertRepo, webhookPublisher, log, cfg)

	// Наблюдение за собственной позицией (опционально)
	locationWatcher := startLocationWatcher(ctx, trackingService, redisClient, cfg, log)

	// Инициализация хэндлеров
	handler := v1.NewHandler(trackingService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	if locationWatcher != nil {
		locationWatcher.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
