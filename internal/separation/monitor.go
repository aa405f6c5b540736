package separation

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_tracking_system/internal/geo"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultCooldown — минимальный интервал между повторными оповещениями
// об удалении одного и того же участника группы.
const DefaultCooldown = 300 * time.Second

// Monitor отслеживает удаление участников группы от отслеживаемого
// объекта. Кулдаун ведется независимо по каждому участнику: оповещение
// об одном пире не подавляет оповещения о других.
type Monitor struct {
	cooldown time.Duration
	logger   *logrus.Logger

	now func() time.Time

	mu          sync.Mutex
	lastAlertAt map[string]time.Time
}

func New(cooldown time.Duration, logger *logrus.Logger) *Monitor {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Monitor{
		cooldown:    cooldown,
		logger:      logger,
		now:         time.Now,
		lastAlertAt: make(map[string]time.Time),
	}
}

// Check сравнивает позицию объекта с позициями участников группы и
// возвращает оповещения о тех, кто дальше maxDistanceMeters.
// Повторный вызов с теми же входными данными до истечения кулдауна
// не порождает дубликатов. Пустой список участников — пустой результат.
func (m *Monitor) Check(entityID string, self models.Coordinate, peers []models.PeerLocation, maxDistanceMeters float64) []models.AlertEvent {
	now := m.now()
	alerts := make([]models.AlertEvent, 0)

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, peer := range peers {
		distance := geo.Distance(self, peer.Coordinate)
		if distance <= maxDistanceMeters {
			continue
		}

		if last, ok := m.lastAlertAt[peer.ID]; ok && now.Sub(last) < m.cooldown {
			continue
		}
		m.lastAlertAt[peer.ID] = now

		m.logger.WithFields(logrus.Fields{
			"component": "separation",
			"entity_id": entityID,
			"peer_id":   peer.ID,
			"distance":  distance,
		}).Debug("Group separation alert emitted")

		alerts = append(alerts, models.AlertEvent{
			ID:             uuid.New(),
			Kind:           models.AlertSeparation,
			EntityID:       entityID,
			PeerID:         peer.ID,
			DistanceMeters: distance,
			Latitude:       self.Latitude,
			Longitude:      self.Longitude,
			OccurredAt:     now,
		})
	}

	return alerts
}

// Forget сбрасывает запись кулдауна участника. Вызывается, когда
// участник покидает группу.
func (m *Monitor) Forget(peerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lastAlertAt, peerID)
}
