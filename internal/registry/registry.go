package registry

import (
	"sync"

	"github.com/shenikar/geo_tracking_system/internal/geo"
	"github.com/shenikar/geo_tracking_system/internal/models"
)

// Registry хранит набор активных геозон в памяти. Состояние не
// переживает перезапуск процесса — это осознанное решение, реестр
// не является долговременным хранилищем.
//
// Реестр создается явно и передается потребителям по ссылке,
// глобального состояния нет.
type Registry struct {
	mu     sync.RWMutex
	fences map[string]models.Geofence
	order  []string
}

// Evaluation — результат проверки точки против одной геозоны.
type Evaluation struct {
	Fence  models.Geofence
	Inside bool
}

func New() *Registry {
	return &Registry{
		fences: make(map[string]models.Geofence),
	}
}

// Add добавляет геозону или заменяет существующую с тем же ID.
// Некорректная геозона отклоняется с ValidationError и не попадает
// в вычисление.
func (r *Registry) Add(fence models.Geofence) error {
	if fence.ID == "" {
		return &models.ValidationError{Field: "id", Reason: "must not be empty"}
	}
	if fence.RadiusMeters <= 0 {
		return &models.ValidationError{Field: "radius_meters", Reason: "must be greater than zero"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fences[fence.ID]; !exists {
		r.order = append(r.order, fence.ID)
	}
	r.fences[fence.ID] = fence
	return nil
}

// Remove удаляет геозону по ID. Удаление несуществующей геозоны
// не является ошибкой.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fences[id]; !exists {
		return
	}

	delete(r.fences, id)
	for i, fid := range r.order {
		if fid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get возвращает геозону по ID.
func (r *Registry) Get(id string) (models.Geofence, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fence, exists := r.fences[id]
	return fence, exists
}

// List возвращает все геозоны в порядке добавления.
func (r *Registry) List() []models.Geofence {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Geofence, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.fences[id])
	}
	return result
}

// Count возвращает количество зарегистрированных геозон.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fences)
}

// Evaluate проверяет точку против каждой зарегистрированной геозоны.
// Чистая функция от текущего состояния реестра и точки, состояние
// не изменяется.
func (r *Registry) Evaluate(point models.Coordinate) []Evaluation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Evaluation, 0, len(r.order))
	for _, id := range r.order {
		fence := r.fences[id]
		result = append(result, Evaluation{
			Fence:  fence,
			Inside: geo.WithinRadius(point, fence.Center, fence.RadiusMeters),
		})
	}
	return result
}
