package presence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_tracking_system/internal/models"
	"github.com/sirupsen/logrus"
)

// peerMessage — формат сообщения канала присутствия.
type peerMessage struct {
	PeerID      string    `json:"peer_id"`
	DisplayName string    `json:"display_name"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timestamp   time.Time `json:"timestamp"`
	Left        bool      `json:"left,omitempty"`
}

// Subscriber читает позиции участников группы из канала Redis Pub/Sub
// и поддерживает их в Store.
type Subscriber struct {
	redisClient *redis.Client
	store       *Store
	logger      *logrus.Logger
	channel     string
}

func NewSubscriber(redisClient *redis.Client, store *Store, logger *logrus.Logger, channel string) *Subscriber {
	return &Subscriber{
		redisClient: redisClient,
		store:       store,
		logger:      logger,
		channel:     channel,
	}
}

// Start запускает горутину чтения канала присутствия. Останавливается
// при отмене контекста.
func (s *Subscriber) Start(ctx context.Context) {
	log := s.logger.WithField("component", "presence").WithField("channel", s.channel)
	log.Info("Starting presence subscriber...")

	pubsub := s.redisClient.Subscribe(ctx, s.channel)

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Info("Stopping presence subscriber.")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.handleMessage(msg.Payload)
			}
		}
	}()
}

func (s *Subscriber) handleMessage(payload string) {
	var msg peerMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		s.logger.WithField("component", "presence").WithError(err).Error("Failed to unmarshal peer message")
		return
	}
	if msg.PeerID == "" {
		s.logger.WithField("component", "presence").Warn("Peer message without peer_id, skipping")
		return
	}

	if msg.Left {
		s.store.Remove(msg.PeerID)
		return
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	s.store.Upsert(models.PeerLocation{
		ID:          msg.PeerID,
		DisplayName: msg.DisplayName,
		Coordinate:  models.Coordinate{Latitude: msg.Latitude, Longitude: msg.Longitude},
		LastUpdated: ts,
	})
}
