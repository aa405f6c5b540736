package presence

import (
	"sort"
	"sync"

	"github.com/shenikar/geo_tracking_system/internal/models"
)

// Store хранит последние известные позиции участников группы в памяти.
// Запись обновляется целиком при каждом свежем обновлении позиции;
// потребители читают снимки и не изменяют записи.
type Store struct {
	mu    sync.RWMutex
	peers map[string]models.PeerLocation
}

func NewStore() *Store {
	return &Store{
		peers: make(map[string]models.PeerLocation),
	}
}

// Upsert добавляет или обновляет позицию участника.
func (s *Store) Upsert(peer models.PeerLocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[peer.ID] = peer
}

// Remove удаляет участника. Идемпотентен.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.peers, id)
}

// Get возвращает позицию участника.
func (s *Store) Get(id string) (models.PeerLocation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	peer, exists := s.peers[id]
	return peer, exists
}

// List возвращает снимок позиций всех участников, отсортированный
// по ID для детерминированного обхода.
func (s *Store) List() []models.PeerLocation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.PeerLocation, 0, len(s.peers))
	for _, peer := range s.peers {
		result = append(result, peer)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Count возвращает количество участников.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}
