package models

import "fmt"

// Coordinate представляет географическую точку в градусах.
// Диапазоны не проверяются на этом уровне — валидация выполняется
// на границах (HTTP DTO и реестр геозон).
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeofenceCategory — категория геозоны.
type GeofenceCategory string

const (
	CategoryAttraction GeofenceCategory = "attraction"
	CategoryMeeting    GeofenceCategory = "meeting"
	CategoryCustom     GeofenceCategory = "custom"
)

// AlertConfig — настройки оповещений геозоны. Каждый флаг независимо
// включает соответствующий тип события.
type AlertConfig struct {
	OnEnter         bool `json:"on_enter"`
	OnExit          bool `json:"on_exit"`
	OnDwell         bool `json:"on_dwell"`
	CooldownSeconds int  `json:"cooldown_seconds"`
	Vibrate         bool `json:"vibrate"`
	Sound           bool `json:"sound"`
}

// Geofence — круговая геозона с конфигурацией оповещений.
type Geofence struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     GeofenceCategory `json:"category"`
	Center       Coordinate       `json:"center"`
	RadiusMeters float64          `json:"radius_meters"`
	Alerts       AlertConfig      `json:"alerts"`
}

// ValidationError — ошибка валидации на границе реестра геозон.
// Некорректная геозона отклоняется при регистрации и никогда
// не попадает в вычисление.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Reason)
}
