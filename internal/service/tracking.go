package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/geo_tracking_system/internal/config"
	"github.com/shenikar/geo_tracking_system/internal/engine"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/presence"
	"github.com/shenikar/geo_tracking_system/internal/registry"
	"github.com/shenikar/geo_tracking_system/internal/separation"
	"github.com/shenikar/geo_tracking_system/internal/webhook"
	"github.com/sirupsen/logrus"
)

// AlertRepository определяет контракт для журнала оповещений и проверок позиции
type AlertRepository interface {
	SaveAlertEvent(ctx context.Context, event *models.AlertEvent) error
	SaveLocationCheck(ctx context.Context, check *models.LocationCheck) error
	ListAlertEvents(ctx context.Context, entityID string, limit int) ([]*models.AlertEvent, error)
	GetTrackedEntityStats(ctx context.Context, minutes int) (int, error)
}

// TrackingService определяет контракт бизнес-логики геотрекинга
type TrackingService interface {
	RegisterGeofence(ctx context.Context, fence *models.Geofence) error
	GetGeofence(ctx context.Context, id string) (*models.Geofence, error)
	UpdateGeofence(ctx context.Context, fence *models.Geofence) error
	RemoveGeofence(ctx context.Context, id string) error
	ListGeofences(ctx context.Context) ([]*models.Geofence, error)
	ProcessLocation(ctx context.Context, entityID string, lat, lon float64) (*models.LocationResult, error)
	CheckSeparation(ctx context.Context, entityID string, lat, lon, maxDistanceMeters float64) ([]models.AlertEvent, error)
	ListPeers(ctx context.Context) ([]models.PeerLocation, error)
	ListAlerts(ctx context.Context, entityID string, limit int) ([]*models.AlertEvent, error)
	GetStats(ctx context.Context) (int, error)
}

type trackingService struct {
	registry  *registry.Registry
	engine    *engine.Engine
	monitor   *separation.Monitor
	peers     *presence.Store
	repo      AlertRepository
	publisher webhook.WebhookPublisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewTrackingService(
	reg *registry.Registry,
	eng *engine.Engine,
	monitor *separation.Monitor,
	peers *presence.Store,
	repo AlertRepository,
	publisher webhook.WebhookPublisher,
	logger *logrus.Logger,
	cfg *config.Config,
) TrackingService {
	return &trackingService{
		registry:  reg,
		engine:    eng,
		monitor:   monitor,
		peers:     peers,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// RegisterGeofence регистрирует геозону или заменяет существующую
func (s *trackingService) RegisterGeofence(ctx context.Context, fence *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "tracking",
		"method":   "RegisterGeofence",
		"fence_id": fence.ID,
	})
	log.Info("Attempting to register geofence")

	if fence.Category == "" {
		fence.Category = models.CategoryCustom
	}
	if fence.Alerts.CooldownSeconds <= 0 {
		fence.Alerts.CooldownSeconds = s.cfg.DefaultCooldownSeconds
	}

	if err := s.registry.Add(*fence); err != nil {
		log.WithError(err).Warn("Geofence rejected by registry")
		return fmt.Errorf("service: could not register geofence: %w", err)
	}

	log.Info("Geofence registered successfully")
	return nil
}

// GetGeofence возвращает геозону по ID
func (s *trackingService) GetGeofence(ctx context.Context, id string) (*models.Geofence, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "tracking",
		"method":   "GetGeofence",
		"fence_id": id,
	})

	fence, ok := s.registry.Get(id)
	if !ok {
		log.Warn("Geofence not found")
		return nil, fmt.Errorf("service: geofence with id %s not found", id)
	}
	return &fence, nil
}

// UpdateGeofence обновляет существующую геозону
func (s *trackingService) UpdateGeofence(ctx context.Context, fence *models.Geofence) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "tracking",
		"method":   "UpdateGeofence",
		"fence_id": fence.ID,
	})
	log.Info("Attempting to update geofence")

	if _, ok := s.registry.Get(fence.ID); !ok {
		log.Warn("Attempted to update a non-existent geofence")
		return fmt.Errorf("service: geofence with id %s not found for update", fence.ID)
	}

	if fence.Alerts.CooldownSeconds <= 0 {
		fence.Alerts.CooldownSeconds = s.cfg.DefaultCooldownSeconds
	}

	if err := s.registry.Add(*fence); err != nil {
		log.WithError(err).Warn("Geofence update rejected by registry")
		return fmt.Errorf("service: could not update geofence: %w", err)
	}

	log.Info("Geofence updated successfully")
	return nil
}

// RemoveGeofence удаляет геозону вместе с состоянием присутствия.
// Удаление несуществующей геозоны не является ошибкой.
func (s *trackingService) RemoveGeofence(ctx context.Context, id string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "tracking",
		"method":   "RemoveGeofence",
		"fence_id": id,
	})
	log.Info("Removing geofence")

	s.registry.Remove(id)
	s.engine.ClearFence(id)

	log.Info("Geofence removed")
	return nil
}

// ListGeofences возвращает все геозоны в порядке добавления
func (s *trackingService) ListGeofences(ctx context.Context) ([]*models.Geofence, error) {
	fences := s.registry.List()
	result := make([]*models.Geofence, len(fences))
	for i := range fences {
		result[i] = &fences[i]
	}
	return result, nil
}

// ProcessLocation обрабатывает обновление позиции объекта: прогоняет
// движок геозон, записывает проверку в журнал и публикует порожденные
// события в очередь вебхуков.
func (s *trackingService) ProcessLocation(ctx context.Context, entityID string, lat, lon float64) (*models.LocationResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "ProcessLocation",
		"entity_id": entityID,
	})
	log.Info("Processing location update")

	point := models.Coordinate{Latitude: lat, Longitude: lon}
	events, inside := s.engine.ProcessUpdate(entityID, point)

	check := &models.LocationCheck{
		EntityID:      entityID,
		Latitude:      lat,
		Longitude:     lon,
		MatchedFences: len(inside),
		CheckedAt:     time.Now(),
	}
	if err := s.repo.SaveLocationCheck(ctx, check); err != nil {
		log.WithError(err).Error("Failed to save location check")
		return nil, fmt.Errorf("service: could not save location check: %w", err)
	}

	s.recordEvents(ctx, log, events)

	log.WithField("events", len(events)).Info("Location update processed")
	return &models.LocationResult{
		EntityID:     entityID,
		Coordinate:   point,
		InsideFences: inside,
		Events:       events,
		CheckedAt:    check.CheckedAt,
	}, nil
}

// CheckSeparation сравнивает позицию объекта с позициями участников
// группы. maxDistanceMeters <= 0 означает порог из конфигурации.
func (s *trackingService) CheckSeparation(ctx context.Context, entityID string, lat, lon, maxDistanceMeters float64) ([]models.AlertEvent, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "CheckSeparation",
		"entity_id": entityID,
	})

	if maxDistanceMeters <= 0 {
		maxDistanceMeters = s.cfg.SeparationMaxDistanceMeters
	}

	self := models.Coordinate{Latitude: lat, Longitude: lon}
	alerts := s.monitor.Check(entityID, self, s.peers.List(), maxDistanceMeters)

	s.recordEvents(ctx, log, alerts)

	log.WithField("alerts", len(alerts)).Info("Separation check completed")
	return alerts, nil
}

// ListPeers возвращает текущие позиции участников группы
func (s *trackingService) ListPeers(ctx context.Context) ([]models.PeerLocation, error) {
	return s.peers.List(), nil
}

// ListAlerts возвращает последние события оповещений объекта из журнала
func (s *trackingService) ListAlerts(ctx context.Context, entityID string, limit int) ([]*models.AlertEvent, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	log := s.logger.WithFields(logrus.Fields{
		"service":   "tracking",
		"method":    "ListAlerts",
		"entity_id": entityID,
	})

	events, err := s.repo.ListAlertEvents(ctx, entityID, limit)
	if err != nil {
		log.WithError(err).Error("Failed to list alert events from repository")
		return nil, fmt.Errorf("service: could not list alert events: %w", err)
	}
	return events, nil
}

// GetStats возвращает количество уникальных объектов за окно статистики
func (s *trackingService) GetStats(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "GetStats",
	})

	count, err := s.repo.GetTrackedEntityStats(ctx, s.cfg.StatsTimeWindowMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to get stats from repository")
		return 0, fmt.Errorf("service: could not get stats: %w", err)
	}
	return count, nil
}

// recordEvents записывает события в журнал и публикует их в очередь
// вебхуков. Отказ журнала или очереди не прерывает обработку позиции:
// событие уже доставлено подписчикам движка, здесь только логируем.
func (s *trackingService) recordEvents(ctx context.Context, log *logrus.Entry, events []models.AlertEvent) {
	for i := range events {
		if err := s.repo.SaveAlertEvent(ctx, &events[i]); err != nil {
			log.WithError(err).WithField("event_id", events[i].ID).Error("Failed to save alert event")
		}
		if err := s.publisher.Publish(ctx, events[i]); err != nil {
			log.WithError(err).WithField("event_id", events[i].ID).Error("Failed to publish alert event to webhook queue")
		}
	}
}
