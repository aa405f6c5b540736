package v1

import "github.com/shenikar/geo_tracking_system/internal/models"

// DTOToGeofenceModel преобразует DTO создания/обновления в доменную модель.
// Используем одну функцию, так как поля совпадают.
func DTOToGeofenceModel(dto any) *models.Geofence {
	switch v := dto.(type) {
	case CreateGeofenceRequest:
		return &models.Geofence{
			ID:           v.ID,
			Name:         v.Name,
			Category:     models.GeofenceCategory(v.Category),
			Center:       models.Coordinate{Latitude: v.Latitude, Longitude: v.Longitude},
			RadiusMeters: v.RadiusMeters,
			Alerts:       dtoToAlertConfig(v.Alerts),
		}
	case UpdateGeofenceRequest:
		return &models.Geofence{
			Name:         v.Name,
			Category:     models.GeofenceCategory(v.Category),
			Center:       models.Coordinate{Latitude: v.Latitude, Longitude: v.Longitude},
			RadiusMeters: v.RadiusMeters,
			Alerts:       dtoToAlertConfig(v.Alerts),
		}
	}
	return nil
}

func dtoToAlertConfig(dto AlertConfigDTO) models.AlertConfig {
	return models.AlertConfig{
		OnEnter:         dto.OnEnter,
		OnExit:          dto.OnExit,
		OnDwell:         dto.OnDwell,
		CooldownSeconds: dto.CooldownSeconds,
		Vibrate:         dto.Vibrate,
		Sound:           dto.Sound,
	}
}

// ModelToGeofenceResponse преобразует доменную модель в DTO для ответа
func ModelToGeofenceResponse(model *models.Geofence) *GeofenceResponse {
	return &GeofenceResponse{
		ID:           model.ID,
		Name:         model.Name,
		Category:     string(model.Category),
		Latitude:     model.Center.Latitude,
		Longitude:    model.Center.Longitude,
		RadiusMeters: model.RadiusMeters,
		Alerts: AlertConfigDTO{
			OnEnter:         model.Alerts.OnEnter,
			OnExit:          model.Alerts.OnExit,
			OnDwell:         model.Alerts.OnDwell,
			CooldownSeconds: model.Alerts.CooldownSeconds,
			Vibrate:         model.Alerts.Vibrate,
			Sound:           model.Alerts.Sound,
		},
	}
}

// ModelsToGeofenceResponses преобразует слайс моделей в слайс DTO
func ModelsToGeofenceResponses(fences []*models.Geofence) []*GeofenceResponse {
	responses := make([]*GeofenceResponse, len(fences))
	for i, fence := range fences {
		responses[i] = ModelToGeofenceResponse(fence)
	}
	return responses
}

// ModelToAlertEventResponse преобразует событие оповещения в DTO
func ModelToAlertEventResponse(event models.AlertEvent) AlertEventResponse {
	return AlertEventResponse{
		ID:             event.ID,
		Kind:           string(event.Kind),
		EntityID:       event.EntityID,
		FenceID:        event.FenceID,
		FenceName:      event.FenceName,
		PeerID:         event.PeerID,
		DistanceMeters: event.DistanceMeters,
		Latitude:       event.Latitude,
		Longitude:      event.Longitude,
		Sound:          event.Sound,
		Vibrate:        event.Vibrate,
		OccurredAt:     event.OccurredAt,
	}
}

// ModelToLocationUpdateResponse преобразует результат обработки позиции в DTO
func ModelToLocationUpdateResponse(result *models.LocationResult) *LocationUpdateResponse {
	inside := make([]GeofenceResponse, len(result.InsideFences))
	for i := range result.InsideFences {
		inside[i] = *ModelToGeofenceResponse(&result.InsideFences[i])
	}
	events := make([]AlertEventResponse, len(result.Events))
	for i, event := range result.Events {
		events[i] = ModelToAlertEventResponse(event)
	}
	return &LocationUpdateResponse{
		EntityID:     result.EntityID,
		InsideFences: inside,
		Events:       events,
		CheckedAt:    result.CheckedAt,
	}
}

// ModelsToPeerResponses преобразует позиции участников в DTO
func ModelsToPeerResponses(peers []models.PeerLocation) []PeerResponse {
	responses := make([]PeerResponse, len(peers))
	for i, peer := range peers {
		responses[i] = PeerResponse{
			ID:          peer.ID,
			DisplayName: peer.DisplayName,
			Latitude:    peer.Coordinate.Latitude,
			Longitude:   peer.Coordinate.Longitude,
			LastUpdated: peer.LastUpdated,
		}
	}
	return responses
}
