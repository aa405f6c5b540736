package presence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/shenikar/geo_tracking_system/internal/watcher"
	"github.com/sirupsen/logrus"
)

// positionMessage — формат сообщения канала позиций отслеживаемого
// объекта. Устройство сообщает либо координаты, либо статус отказа.
type positionMessage struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status,omitempty"`
}

const (
	statusPermissionDenied = "permission_denied"
	statusUnavailable      = "unavailable"
)

// RedisPositionSource — watcher.PositionSource поверх канала Redis
// Pub/Sub: непрерывный источник обновлений позиции устройства.
type RedisPositionSource struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	channel     string
}

func NewRedisPositionSource(redisClient *redis.Client, logger *logrus.Logger, channel string) *RedisPositionSource {
	return &RedisPositionSource{
		redisClient: redisClient,
		logger:      logger,
		channel:     channel,
	}
}

// Subscribe доставляет обновления позиции из канала до отмены контекста.
func (s *RedisPositionSource) Subscribe(ctx context.Context, onUpdate func(models.Coordinate, time.Time), onError func(error)) {
	log := s.logger.WithField("component", "position_source").WithField("channel", s.channel)

	pubsub := s.redisClient.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var pos positionMessage
			if err := json.Unmarshal([]byte(msg.Payload), &pos); err != nil {
				log.WithError(err).Error("Failed to unmarshal position message")
				onError(watcher.ErrPositionUnavailable)
				continue
			}

			switch pos.Status {
			case statusPermissionDenied:
				onError(watcher.ErrPermissionDenied)
			case statusUnavailable:
				onError(watcher.ErrPositionUnavailable)
			default:
				ts := pos.Timestamp
				if ts.IsZero() {
					ts = time.Now()
				}
				onUpdate(models.Coordinate{Latitude: pos.Latitude, Longitude: pos.Longitude}, ts)
			}
		}
	}
}
