package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind — тип события оповещения.
type AlertKind string

const (
	AlertEnter      AlertKind = "enter"
	AlertExit       AlertKind = "exit"
	AlertDwell      AlertKind = "dwell"
	AlertSeparation AlertKind = "separation"
)

// AlertEvent — событие, исходящее от движка геозон или монитора
// разделения группы. Поля геозоны заполнены для enter/exit/dwell,
// поля пира — для separation.
type AlertEvent struct {
	ID             uuid.UUID `json:"id"`
	Kind           AlertKind `json:"kind"`
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
