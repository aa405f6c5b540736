package geo

import (
	"math"

	"github.com/shenikar/geo_tracking_system/internal/models"
)

const earthRadiusMeters = 6371000.0

// Distance вычисляет расстояние большого круга между двумя точками
// по формуле гаверсинуса, в метрах. Функция тотальна: диапазоны
// координат не проверяются, вызывающий отвечает за валидацию.
func Distance(a, b models.Coordinate) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius сообщает, находится ли точка внутри круга с заданным
// центром и радиусом. Точка ровно на границе считается внутри.
func WithinRadius(point, center models.Coordinate, radiusMeters float64) bool {
	return Distance(point, center) <= radiusMeters
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
