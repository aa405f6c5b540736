package watcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

// Ошибки источника позиции. Доставляются через onError, автоматических
// повторов нет — политика повтора принадлежит потребителю.
var (
	// ErrPermissionDenied — доступ к геолокации запрещен пользователем
	// или платформой.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrPositionUnavailable — позицию временно получить не удалось.
	ErrPositionUnavailable = errors.New("position unavailable")
)

// PositionSource — непрерывный источник обновлений позиции.
// Реализация доставляет каждое обновление асинхронно через onUpdate
// и прекращает доставку при отмене контекста.
type PositionSource interface {
	Subscribe(ctx context.Context, onUpdate func(models.Coordinate, time.Time), onError func(error))
}

// Watcher оборачивает PositionSource жизненным циклом start/stop.
// Start идемпотентен: повторный вызов до Stop не создает вторую
// подписку. Stop — жесткая граница отмены: после возврата из Stop
// ни один callback не будет вызван, даже если обновление уже в пути.
type Watcher struct {
	source PositionSource
	logger *logrus.Logger

	mu sync.Mutex
	// Счетчик поколений: callback, захвативший устаревшее поколение,
	// отбрасывается. Доставка выполняется под mu, поэтому вернувшийся
	// Stop гарантирует отсутствие последующих вызовов.
	generation int
	cancel     context.CancelFunc
}

func New(source PositionSource, logger *logrus.Logger) *Watcher {
	return &Watcher{
		source: source,
		logger: logger,
	}
}

// Start начинает доставку обновлений позиции. Повторный вызов при
// активной подписке игнорируется.
func (w *Watcher) Start(onUpdate func(models.Coordinate, time.Time), onError func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.logger.WithField("component", "watcher").Debug("Start called on running watcher, ignoring")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	gen := w.generation

	go w.source.Subscribe(ctx, w.guardUpdate(gen, onUpdate), w.guardError(gen, onError))
	w.logger.WithField("component", "watcher").Info("Location watcher started")
}

// Stop прекращает доставку. Идемпотентен.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel == nil {
		return
	}

	w.cancel()
	w.cancel = nil
	w.generation++
	w.logger.WithField("component", "watcher").Info("Location watcher stopped")
}

// Running сообщает, активна ли подписка.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}

func (w *Watcher) guardUpdate(gen int, fn func(models.Coordinate, time.Time)) func(models.Coordinate, time.Time) {
	return func(point models.Coordinate, ts time.Time) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.generation {
			// Обновление пришло после Stop — отбрасываем
			return
		}
		fn(point, ts)
	}
}

func (w *Watcher) guardError(gen int, fn func(error)) func(error) {
	return func(err error) {
		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.generation {
			return
		}
		w.logger.WithField("component", "watcher").WithError(err).Warn("Position source error")
		fn(err)
	}
}
