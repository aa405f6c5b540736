package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_tracking_system/internal/config"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gin-gonic/gin"
)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockTrackingService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockTrackingService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		APIKeys:                []string{"test-api-key"},
		StatsTimeWindowMinutes: 60,
	}

	handler := NewHandler(mockService, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authHeader() map[string]string {
	return map[string]string{"X-API-Key": "test-api-key"}
}

func sampleCreateRequest() CreateGeofenceRequest {
	return CreateGeofenceRequest{
		ID:           "castle",
		Name:         "Castle",
		Category:     "attraction",
		Latitude:     28.4177,
		Longitude:    -81.5812,
		RadiusMeters: 200,
		Alerts: AlertConfigDTO{
			OnEnter:         true,
			OnExit:          true,
			CooldownSeconds: 300,
		},
	}
}

func TestCreateGeofence_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := sampleCreateRequest()

	mockService.EXPECT().
		RegisterGeofence(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fence *models.Geofence) error {
			assert.Equal(t, "castle", fence.ID)
			assert.Equal(t, 200.0, fence.RadiusMeters)
			return nil
		}).Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp GeofenceResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "castle", resp.ID)
	assert.Equal(t, reqBody.Name, resp.Name)
}

func TestCreateGeofence_InvalidJSON(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().RegisterGeofence(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBufferString(`{"id": "castle"`), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestCreateGeofence_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := sampleCreateRequest()
	reqBody.RadiusMeters = -5 // Отрицательный радиус не проходит валидацию

	mockService.EXPECT().RegisterGeofence(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGeofence_RegistryRejection(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reqBody := sampleCreateRequest()

	mockService.EXPECT().
		RegisterGeofence(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: could not register geofence: %w",
			&models.ValidationError{Field: "radius_meters", Reason: "must be greater than zero"})).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "radius_meters")
}

func TestCreateGeofence_Unauthorized(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().RegisterGeofence(gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(sampleCreateRequest())

	// Без ключа
	w := makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBuffer(bodyBytes))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// С неверным ключом
	w = makeRequest(router, "POST", "/api/v1/geofences", bytes.NewBuffer(bodyBytes), map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListGeofences_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListGeofences(gomock.Any()).
		Return([]*models.Geofence{
			{ID: "a", Name: "Fence A", RadiusMeters: 100},
			{ID: "b", Name: "Fence B", RadiusMeters: 200},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/geofences", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []GeofenceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "a", resp[0].ID)
	assert.Equal(t, "b", resp[1].ID)
}

func TestGetGeofence_NotFound(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		GetGeofence(gomock.Any(), "missing").
		Return(nil, fmt.Errorf("service: geofence with id missing not found")).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/geofences/missing", nil, authHeader())

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteGeofence_NoContent(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		RemoveGeofence(gomock.Any(), "castle").
		Return(nil).
		Times(1)

	w := makeRequest(router, "DELETE", "/api/v1/geofences/castle", nil, authHeader())

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUpdateLocation_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	eventID := uuid.New()

	mockService.EXPECT().
		ProcessLocation(gomock.Any(), "user-1", 28.4178, -81.5813).
		Return(&models.LocationResult{
			EntityID:   "user-1",
			Coordinate: models.Coordinate{Latitude: 28.4178, Longitude: -81.5813},
			InsideFences: []models.Geofence{
				{ID: "castle", Name: "Castle", RadiusMeters: 200},
			},
			Events: []models.AlertEvent{
				{ID: eventID, Kind: models.AlertEnter, EntityID: "user-1", FenceID: "castle"},
			},
			CheckedAt: time.Now(),
		}, nil).
		Times(1)

	reqBody := LocationUpdateRequest{EntityID: "user-1", Latitude: 28.4178, Longitude: -81.5813}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/update", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp LocationUpdateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user-1", resp.EntityID)
	require.Len(t, resp.InsideFences, 1)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, "enter", resp.Events[0].Kind)
	assert.Equal(t, eventID, resp.Events[0].ID)
}

func TestUpdateLocation_MissingEntityID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ProcessLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	reqBody := LocationUpdateRequest{Latitude: 28.4178, Longitude: -81.5813}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/update", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckSeparation_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		CheckSeparation(gomock.Any(), "user-1", 28.4177, -81.5812, 200.0).
		Return([]models.AlertEvent{
			{ID: uuid.New(), Kind: models.AlertSeparation, EntityID: "user-1", PeerID: "peer-1", DistanceMeters: 250},
		}, nil).
		Times(1)

	reqBody := SeparationCheckRequest{EntityID: "user-1", Latitude: 28.4177, Longitude: -81.5812, MaxDistanceMeters: 200}
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/v1/location/separation", bytes.NewBuffer(bodyBytes), authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []AlertEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "separation", resp[0].Kind)
	assert.Equal(t, "peer-1", resp[0].PeerID)
}

func TestListPeers_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListPeers(gomock.Any()).
		Return([]models.PeerLocation{
			{ID: "peer-1", DisplayName: "Alice", Coordinate: models.Coordinate{Latitude: 28.41, Longitude: -81.58}},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/peers", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []PeerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Alice", resp[0].DisplayName)
}

func TestListAlerts_RequiresEntityID(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().ListAlerts(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/alerts", nil, authHeader())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListAlerts_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		ListAlerts(gomock.Any(), "user-1", 20).
		Return([]*models.AlertEvent{
			{ID: uuid.New(), Kind: models.AlertExit, EntityID: "user-1", FenceID: "castle"},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/alerts?entity_id=user-1", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []AlertEventResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "exit", resp[0].Kind)
}

func TestGetStats_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)

	mockService.EXPECT().
		GetStats(gomock.Any()).
		Return(7, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/v1/geofences/stats", nil, authHeader())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.EntityCount)
}

func TestHealthCheck_NoAuthRequired(t *testing.T) {
	_, _, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}
