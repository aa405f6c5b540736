package v1

import (
	"time"

	"github.com/google/uuid"
)

// AlertConfigDTO настройки оповещений геозоны
// @Description Настройки оповещений геозоны
type AlertConfigDTO struct {
	OnEnter         bool `json:"on_enter"`
	OnExit          bool `json:"on_exit"`
	OnDwell         bool `json:"on_dwell"`
	CooldownSeconds int  `json:"cooldown_seconds" validate:"omitempty,gte=0"`
	Vibrate         bool `json:"vibrate"`
	Sound           bool `json:"sound"`
}

// CreateGeofenceRequest DTO для регистрации геозоны
// @Description DTO для регистрации геозоны
type CreateGeofenceRequest struct {
	ID           string         `json:"id" validate:"required,min=1,max=255"`
	Name         string         `json:"name" validate:"required,min=2,max=255"`
	Category     string         `json:"category" validate:"omitempty,oneof=attraction meeting custom"`
	Latitude     float64        `json:"latitude" validate:"required,latitude"`
	Longitude    float64        `json:"longitude" validate:"required,longitude"`
	RadiusMeters float64        `json:"radius_meters" validate:"required,gt=0"`
	Alerts       AlertConfigDTO `json:"alerts"`
}

// UpdateGeofenceRequest DTO для обновления геозоны
// @Description DTO для обновления геозоны
type UpdateGeofenceRequest struct {
	Name         string         `json:"name" validate:"required,min=2,max=255"`
	Category     string         `json:"category" validate:"omitempty,oneof=attraction meeting custom"`
	Latitude     float64        `json:"latitude" validate:"required,latitude"`
	Longitude    float64        `json:"longitude" validate:"required,longitude"`
	RadiusMeters float64        `json:"radius_meters" validate:"required,gt=0"`
	Alerts       AlertConfigDTO `json:"alerts"`
}

// GeofenceResponse DTO для ответа с информацией о геозоне
// @Description DTO для ответа с информацией о геозоне
type GeofenceResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Category     string         `json:"category"`
	Latitude     float64        `json:"latitude"`
	Longitude    float64        `json:"longitude"`
	RadiusMeters float64        `json:"radius_meters"`
	Alerts       AlertConfigDTO `json:"alerts"`
}

// LocationUpdateRequest DTO для обновления позиции объекта
// @Description DTO для обновления позиции объекта
type LocationUpdateRequest struct {
	EntityID  string  `json:"entity_id" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`
}

// LocationUpdateResponse DTO для ответа на обновление позиции
// @Description DTO для ответа на обновление позиции
type LocationUpdateResponse struct {
	EntityID     string               `json:"entity_id"`
	InsideFences []GeofenceResponse   `json:"inside_fences"`
	Events       []AlertEventResponse `json:"events"`
	CheckedAt    time.Time            `json:"checked_at"`
}

// SeparationCheckRequest DTO для проверки удаления от группы
// @Description DTO для проверки удаления от группы
type SeparationCheckRequest struct {
	EntityID          string  `json:"entity_id" validate:"required"`
	Latitude          float64 `json:"latitude" validate:"required,latitude"`
	Longitude         float64 `json:"longitude" validate:"required,longitude"`
	MaxDistanceMeters float64 `json:"max_distance_meters" validate:"omitempty,gt=0"`
}

// AlertEventResponse DTO для события оповещения
// @Description DTO для события оповещения
type AlertEventResponse struct {
	ID             uuid.UUID `json:"id"`
	Kind           string    `json:"kind"`
	EntityID       string    `json:"entity_id"`
	FenceID        string    `json:"fence_id,omitempty"`
	FenceName      string    `json:"fence_name,omitempty"`
	PeerID         string    `json:"peer_id,omitempty"`
	DistanceMeters float64   `json:"distance_meters,omitempty"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Sound          bool      `json:"sound,omitempty"`
	Vibrate        bool      `json:"vibrate,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// PeerResponse DTO для позиции участника группы
// @Description DTO для позиции участника группы
type PeerResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	LastUpdated time.Time `json:"last_updated"`
}

// StatsResponse DTO для ответа со статистикой
// @Description DTO для ответа со статистикой
type StatsResponse struct {
	EntityCount int `json:"entity_count"`
}
