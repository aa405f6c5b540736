package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shenikar/geo_tracking_system/internal/config"
	"github.com/shenikar/geo_tracking_system/internal/engine"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/presence"
	"github.com/shenikar/geo_tracking_system/internal/registry"
	"github.com/shenikar/geo_tracking_system/internal/separation"
	"github.com/shenikar/geo_tracking_system/internal/service/mocks"
	webhook_mocks "github.com/shenikar/geo_tracking_system/internal/webhook/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestTrackingService — вспомогательная функция для создания инстанса
// сервиса с моками. Реестр, движок и монитор — настоящие.
func newTestTrackingService(t *testing.T) (*trackingService, *mocks.MockAlertRepository, *webhook_mocks.MockWebhookPublisher, *presence.Store) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockAlertRepository(ctrl)
	webhookMock := webhook_mocks.NewMockWebhookPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		DefaultCooldownSeconds:      300,
		DwellThreshold:              10 * time.Minute,
		SeparationMaxDistanceMeters: 200,
		SeparationCooldown:          300 * time.Second,
		StatsTimeWindowMinutes:      60,
	}

	reg := registry.New()
	eng := engine.New(reg, cfg.DwellThreshold, logger)
	monitor := separation.New(cfg.SeparationCooldown, logger)
	peers := presence.NewStore()

	svc := NewTrackingService(reg, eng, monitor, peers, repoMock, webhookMock, logger, cfg)
	return svc.(*trackingService), repoMock, webhookMock, peers
}

func testFence(id string) *models.Geofence {
	return &models.Geofence{
		ID:           id,
		Name:         "Fence " + id,
		Category:     models.CategoryAttraction,
		Center:       models.Coordinate{Latitude: 28.4177, Longitude: -81.5812},
		RadiusMeters: 200,
		Alerts:       models.AlertConfig{OnEnter: true},
	}
}

func TestRegisterGeofence_Success(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestTrackingService(t)
	fence := testFence("castle")

	// Действие
	err := svc.RegisterGeofence(context.Background(), fence)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 300, fence.Alerts.CooldownSeconds) // кулдаун по умолчанию
	got, err := svc.GetGeofence(context.Background(), "castle")
	require.NoError(t, err)
	assert.Equal(t, "Fence castle", got.Name)
	assert.Equal(t, models.CategoryAttraction, got.Category)
}

func TestRegisterGeofence_ValidationError(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestTrackingService(t)
	fence := testFence("bad")
	fence.RadiusMeters = -5

	// Действие
	err := svc.RegisterGeofence(context.Background(), fence)

	// Проверки
	require.Error(t, err)
	var vErr *models.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestGetGeofence_NotFound(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestTrackingService(t)

	// Действие
	fence, err := svc.GetGeofence(context.Background(), "missing")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, fence)
}

func TestUpdateGeofence_NotFound(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestTrackingService(t)

	// Действие
	err := svc.UpdateGeofence(context.Background(), testFence("missing"))

	// Проверки
	require.Error(t, err)
}

func TestRemoveGeofence_Idempotent(t *testing.T) {
	// Подготовка
	svc, _, _, _ := newTestTrackingService(t)
	require.NoError(t, svc.RegisterGeofence(context.Background(), testFence("castle")))

	// Действие и проверки: повторное удаление не является ошибкой
	require.NoError(t, svc.RemoveGeofence(context.Background(), "castle"))
	require.NoError(t, svc.RemoveGeofence(context.Background(), "castle"))

	fences, err := svc.ListGeofences(context.Background())
	require.NoError(t, err)
	assert.Empty(t, fences)
}

func TestProcessLocation_EnterEventRecordedAndPublished(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	require.NoError(t, svc.RegisterGeofence(ctx, testFence("castle")))

	// Ожидания
	repoMock.EXPECT().
		SaveLocationCheck(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, check *models.LocationCheck) error {
			check.ID = 1
			assert.Equal(t, "user-1", check.EntityID)
			assert.Equal(t, 1, check.MatchedFences)
			return nil
		}).Times(1)
	repoMock.EXPECT().
		SaveAlertEvent(ctx, gomock.Any()).
		Return(nil).
		Times(1)
	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(nil).
		Times(1)

	// Действие
	result, err := svc.ProcessLocation(ctx, "user-1", 28.4178, -81.5813)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, models.AlertEnter, result.Events[0].Kind)
	require.Len(t, result.InsideFences, 1)
	assert.Equal(t, "castle", result.InsideFences[0].ID)
}

func TestProcessLocation_NoEventsOutsideFence(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	require.NoError(t, svc.RegisterGeofence(ctx, testFence("castle")))

	// Ожидания: только запись проверки, без событий
	repoMock.EXPECT().SaveLocationCheck(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().SaveAlertEvent(gomock.Any(), gomock.Any()).Times(0)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	result, err := svc.ProcessLocation(ctx, "user-1", 28.5, -81.5812)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, result.Events)
	assert.Empty(t, result.InsideFences)
}

func TestProcessLocation_SaveCheckError(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		SaveLocationCheck(ctx, gomock.Any()).
		Return(fmt.Errorf("db down")).
		Times(1)

	// Действие
	result, err := svc.ProcessLocation(ctx, "user-1", 28.4178, -81.5813)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestProcessLocation_PublishFailureDoesNotFail(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock, _ := newTestTrackingService(t)
	ctx := context.Background()
	require.NoError(t, svc.RegisterGeofence(ctx, testFence("castle")))

	// Ожидания: отказ очереди вебхуков не прерывает обработку
	repoMock.EXPECT().SaveLocationCheck(ctx, gomock.Any()).Return(nil).Times(1)
	repoMock.EXPECT().SaveAlertEvent(ctx, gomock.Any()).Return(nil).Times(1)
	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(fmt.Errorf("redis down")).
		Times(1)

	// Действие
	result, err := svc.ProcessLocation(ctx, "user-1", 28.4178, -81.5813)

	// Проверки
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
}

func TestCheckSeparation_EmptyPeerList(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock, _ := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().SaveAlertEvent(gomock.Any(), gomock.Any()).Times(0)
	webhookMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	alerts, err := svc.CheckSeparation(ctx, "user-1", 28.4177, -81.5812, 200)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestCheckSeparation_AlertRecordedAndPublished(t *testing.T) {
	// Подготовка
	svc, repoMock, webhookMock, peers := newTestTrackingService(t)
	ctx := context.Background()
	peers.Upsert(models.PeerLocation{
		ID:          "peer-1",
		DisplayName: "Alice",
		Coordinate:  models.Coordinate{Latitude: 28.43, Longitude: -81.5812},
		LastUpdated: time.Now(),
	})

	repoMock.EXPECT().SaveAlertEvent(ctx, gomock.Any()).Return(nil).Times(1)
	webhookMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event models.AlertEvent) error {
			assert.Equal(t, models.AlertSeparation, event.Kind)
			assert.Equal(t, "peer-1", event.PeerID)
			return nil
		}).Times(1)

	// Действие: maxDistance <= 0 — порог из конфигурации (200 м)
	alerts, err := svc.CheckSeparation(ctx, "user-1", 28.4177, -81.5812, 0)

	// Проверки
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Greater(t, alerts[0].DistanceMeters, 200.0)
}

func TestListAlerts_ClampsLimit(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		ListAlertEvents(ctx, "user-1", 20).
		Return([]*models.AlertEvent{}, nil).
		Times(1)

	// Действие: limit вне диапазона заменяется значением по умолчанию
	_, err := svc.ListAlerts(ctx, "user-1", 1000)

	// Проверки
	require.NoError(t, err)
}

func TestGetStats_Success(t *testing.T) {
	// Подготовка
	svc, repoMock, _, _ := newTestTrackingService(t)
	ctx := context.Background()

	repoMock.EXPECT().
		GetTrackedEntityStats(ctx, 60).
		Return(42, nil).
		Times(1)

	// Действие
	count, err := svc.GetStats(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 42, count)
}
