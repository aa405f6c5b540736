package models

import (
	"time"
)

// PeerLocation — последняя известная позиция участника группы.
// Обновляется из канала присутствия; монитор разделения группы
// читает эти записи, не изменяя их.
type PeerLocation struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	Coordinate  Coordinate `json:"coordinate"`
	LastUpdated time.Time  `json:"last_updated"`
}

// LocationCheck представляет запись об обработанном обновлении позиции.
type LocationCheck struct {
	ID            int64     `json:"id"`
	EntityID      string    `json:"entity_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	MatchedFences int       `json:"matched_fences"`
	CheckedAt     time.Time `json:"checked_at"`
}

// LocationResult — результат обработки одного обновления позиции:
// геозоны, содержащие точку, и события, порожденные переходами.
type LocationResult struct {
	EntityID     string       `json:"entity_id"`
	Coordinate   Coordinate   `json:"coordinate"`
	InsideFences []Geofence   `json:"inside_fences"`
	Events       []AlertEvent `json:"events"`
	CheckedAt    time.Time    `json:"checked_at"`
}
