package engine

import (
	"bytes"
	"testing"
	"time"

	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/registry"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fenceCenter  = models.Coordinate{Latitude: 28.4177, Longitude: -81.5812}
	insidePoint  = models.Coordinate{Latitude: 28.4178, Longitude: -81.5813}
	outsidePoint = models.Coordinate{Latitude: 28.5, Longitude: -81.5812}
)

// fakeClock — управляемое время для детерминированных проверок кулдауна.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.current
}

func (c *fakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}

// newTestEngine создает движок с одной геозоной и фиктивными часами.
func newTestEngine(t *testing.T, alerts models.AlertConfig, dwellThreshold time.Duration) (*Engine, *fakeClock) {
	reg := registry.New()
	require.NoError(t, reg.Add(models.Geofence{
		ID:           "castle",
		Name:         "Castle",
		Category:     models.CategoryAttraction,
		Center:       fenceCenter,
		RadiusMeters: 200,
		Alerts:       alerts,
	}))

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	clock := &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	e := New(reg, dwellThreshold, logger)
	e.now = clock.Now
	return e, clock
}

func TestProcessUpdate_EnterOnce(t *testing.T) {
	e, _ := newTestEngine(t, models.AlertConfig{OnEnter: true, CooldownSeconds: 300}, 0)

	events, inside := e.ProcessUpdate("user-1", insidePoint)

	require.Len(t, events, 1)
	assert.Equal(t, models.AlertEnter, events[0].Kind)
	assert.Equal(t, "castle", events[0].FenceID)
	assert.Equal(t, "user-1", events[0].EntityID)
	require.Len(t, inside, 1)

	// Повторное "внутри" — no-op: ни события, ни мутации
	events, inside = e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events)
	require.Len(t, inside, 1)
}

func TestProcessUpdate_ExitEvent(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnExit: true}, 0)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events) // OnEnter выключен — вход молчаливый

	clock.Advance(10 * time.Second)
	events, inside := e.ProcessUpdate("user-1", outsidePoint)

	require.Len(t, events, 1)
	assert.Equal(t, models.AlertExit, events[0].Kind)
	assert.Empty(t, inside)

	// Повторное "снаружи" — no-op
	events, _ = e.ProcessUpdate("user-1", outsidePoint)
	assert.Empty(t, events)
}

func TestProcessUpdate_CooldownSuppressesReenter(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnEnter: true, CooldownSeconds: 300}, 0)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)

	// Выход и повторный вход в пределах кулдауна: переход состояния
	// происходит, но событие подавлено
	clock.Advance(60 * time.Second)
	events, _ = e.ProcessUpdate("user-1", outsidePoint)
	assert.Empty(t, events) // OnExit выключен

	clock.Advance(60 * time.Second)
	events, inside := e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events)
	assert.Len(t, inside, 1) // объект внутри, хотя оповещения не было
}

func TestProcessUpdate_CooldownExpiry(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnEnter: true, CooldownSeconds: 300}, 0)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)

	clock.Advance(10 * time.Second)
	e.ProcessUpdate("user-1", outsidePoint)

	// Повторный вход после истечения кулдауна порождает второе событие
	clock.Advance(300 * time.Second)
	events, _ = e.ProcessUpdate("user-1", insidePoint)

	require.Len(t, events, 1)
	assert.Equal(t, models.AlertEnter, events[0].Kind)
}

func TestProcessUpdate_DwellFiresOncePerOccupancy(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnDwell: true}, 5*time.Minute)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events)

	// До порога dwell не срабатывает
	clock.Advance(4 * time.Minute)
	events, _ = e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events)

	clock.Advance(2 * time.Minute)
	events, _ = e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)
	assert.Equal(t, models.AlertDwell, events[0].Kind)

	// Только один dwell за вхождение
	clock.Advance(10 * time.Minute)
	events, _ = e.ProcessUpdate("user-1", insidePoint)
	assert.Empty(t, events)
}

func TestProcessUpdate_IndependentEntities(t *testing.T) {
	e, _ := newTestEngine(t, models.AlertConfig{OnEnter: true, CooldownSeconds: 300}, 0)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)

	// Кулдаун первого объекта не влияет на второй
	events, _ = e.ProcessUpdate("user-2", insidePoint)
	require.Len(t, events, 1)
	assert.Equal(t, "user-2", events[0].EntityID)
}

func TestSubscribe_DeliversAndUnsubscribes(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnEnter: true}, 0)

	var received []models.AlertEvent
	unsubscribe := e.Subscribe(func(ev models.AlertEvent) {
		received = append(received, ev)
	})

	e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, received, 1)
	assert.Equal(t, models.AlertEnter, received[0].Kind)

	unsubscribe()
	clock.Advance(10 * time.Second)
	e.ProcessUpdate("user-1", outsidePoint)
	e.ProcessUpdate("user-1", insidePoint)
	assert.Len(t, received, 1) // после отписки события не доставляются
}

func TestClearFence_ResetsOccupancy(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnEnter: true}, 0)

	events, _ := e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)

	e.ClearFence("castle")

	// После сброса объект снова считается снаружи, вход порождает событие
	clock.Advance(1 * time.Second)
	events, _ = e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)
	assert.Equal(t, models.AlertEnter, events[0].Kind)
}

func TestClearEntity_ResetsOccupancy(t *testing.T) {
	e, clock := newTestEngine(t, models.AlertConfig{OnEnter: true}, 0)

	e.ProcessUpdate("user-1", insidePoint)
	e.ClearEntity("user-1")

	clock.Advance(1 * time.Second)
	events, _ := e.ProcessUpdate("user-1", insidePoint)
	require.Len(t, events, 1)
}
