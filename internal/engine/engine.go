package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/registry"
	"github.com/sirupsen/logrus"
)

// stateKey идентифицирует пару (геозона, отслеживаемый объект).
type stateKey struct {
	fenceID  string
	entityID string
}

// occupancy — состояние присутствия для одной пары (геозона, объект).
// Создается при первой проверке позиции против геозоны; живет до
// удаления геозоны или объекта. Только в памяти.
type occupancy struct {
	isInside    bool
	enteredAt   time.Time
	lastAlertAt time.Time
	dwellFired  bool
}

// Engine — движок геозон: конечный автомат OUTSIDE/INSIDE на пару
// (геозона, объект). Переход состояния и оповещение разделены:
// объект может войти в геозону "молча", если кулдаун еще не истек.
type Engine struct {
	registry *registry.Registry
	logger   *logrus.Logger

	// Порог dwell-события: непрерывное нахождение внутри геозоны
	// дольше этого интервала порождает dwell, один раз за вхождение.
	dwellThreshold time.Duration

	now func() time.Time

	mu    sync.Mutex
	state map[stateKey]*occupancy

	subMu  sync.Mutex
	subs   map[int]func(models.AlertEvent)
	nextID int
}

func New(reg *registry.Registry, dwellThreshold time.Duration, logger *logrus.Logger) *Engine {
	return &Engine{
		registry:       reg,
		logger:         logger,
		dwellThreshold: dwellThreshold,
		now:            time.Now,
		state:          make(map[stateKey]*occupancy),
		subs:           make(map[int]func(models.AlertEvent)),
	}
}

// Subscribe регистрирует подписчика на события движка и возвращает
// функцию отписки. Подписчики вызываются синхронно при обработке
// обновления позиции.
func (e *Engine) Subscribe(fn func(models.AlertEvent)) func() {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	id := e.nextID
	e.nextID++
	e.subs[id] = fn

	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.subs, id)
	}
}

// ProcessUpdate обрабатывает одно обновление позиции объекта: каждая
// зарегистрированная геозона проверяется заново, переходы состояния
// порождают события с учетом флагов AlertConfig и кулдауна.
// Возвращает порожденные события и геозоны, содержащие точку.
func (e *Engine) ProcessUpdate(entityID string, point models.Coordinate) ([]models.AlertEvent, []models.Geofence) {
	evals := e.registry.Evaluate(point)
	now := e.now()

	var events []models.AlertEvent
	var inside []models.Geofence

	e.mu.Lock()
	for _, eval := range evals {
		if eval.Inside {
			inside = append(inside, eval.Fence)
		}

		key := stateKey{fenceID: eval.Fence.ID, entityID: entityID}
		st, exists := e.state[key]
		if !exists {
			// Начальное состояние — OUTSIDE
			st = &occupancy{}
			e.state[key] = st
		}

		if event := e.transition(st, eval.Fence, entityID, point, eval.Inside, now); event != nil {
			events = append(events, *event)
		}
	}
	e.mu.Unlock()

	for _, event := range events {
		e.publish(event)
	}

	return events, inside
}

// transition применяет одно вычисление к состоянию пары и возвращает
// событие, если переход его породил. Вызывается под e.mu.
func (e *Engine) transition(st *occupancy, fence models.Geofence, entityID string, point models.Coordinate, isInside bool, now time.Time) *models.AlertEvent {
	switch {
	case isInside && !st.isInside:
		// OUTSIDE -> INSIDE: состояние обновляется всегда, событие —
		// только если включен OnEnter и кулдаун истек.
		st.isInside = true
		st.enteredAt = now
		st.dwellFired = false
		if fence.Alerts.OnEnter && e.cooldownElapsed(st, fence, now) {
			st.lastAlertAt = now
			return e.newEvent(models.AlertEnter, fence, entityID, point, now)
		}

	case !isInside && st.isInside:
		// INSIDE -> OUTSIDE: симметрично, enteredAt сбрасывается.
		st.isInside = false
		st.enteredAt = time.Time{}
		if fence.Alerts.OnExit && e.cooldownElapsed(st, fence, now) {
			st.lastAlertAt = now
			return e.newEvent(models.AlertExit, fence, entityID, point, now)
		}

	case isInside && st.isInside:
		// Все еще внутри: переход отсутствует, но может сработать dwell
		if fence.Alerts.OnDwell && !st.dwellFired &&
			e.dwellThreshold > 0 && now.Sub(st.enteredAt) >= e.dwellThreshold &&
			e.cooldownElapsed(st, fence, now) {
			st.dwellFired = true
			st.lastAlertAt = now
			return e.newEvent(models.AlertDwell, fence, entityID, point, now)
		}

	default:
		// Все еще снаружи: ничего не делаем
	}
	return nil
}

// cooldownElapsed проверяет, истек ли кулдаун оповещений для пары.
// Кулдаун общий для всех типов событий одной пары (геозона, объект).
func (e *Engine) cooldownElapsed(st *occupancy, fence models.Geofence, now time.Time) bool {
	if st.lastAlertAt.IsZero() {
		return true
	}
	cooldown := time.Duration(fence.Alerts.CooldownSeconds) * time.Second
	return now.Sub(st.lastAlertAt) >= cooldown
}

func (e *Engine) newEvent(kind models.AlertKind, fence models.Geofence, entityID string, point models.Coordinate, now time.Time) *models.AlertEvent {
	e.logger.WithFields(logrus.Fields{
		"component": "engine",
		"kind":      kind,
		"fence_id":  fence.ID,
		"entity_id": entityID,
	}).Debug("Geofence event emitted")

	return &models.AlertEvent{
		ID:         uuid.New(),
		Kind:       kind,
		EntityID:   entityID,
		FenceID:    fence.ID,
		FenceName:  fence.Name,
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		Sound:      fence.Alerts.Sound,
		Vibrate:    fence.Alerts.Vibrate,
		OccurredAt: now,
	}
}

func (e *Engine) publish(event models.AlertEvent) {
	e.subMu.Lock()
	subs := make([]func(models.AlertEvent), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.subMu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// ClearFence удаляет состояние присутствия всех объектов для геозоны.
// Вызывается при удалении геозоны из реестра.
func (e *Engine) ClearFence(fenceID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key := range e.state {
		if key.fenceID == fenceID {
			delete(e.state, key)
		}
	}
}

// ClearEntity удаляет состояние присутствия объекта во всех геозонах.
func (e *Engine) ClearEntity(entityID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for key := range e.state {
		if key.entityID == entityID {
			delete(e.state, key)
		}
	}
}
