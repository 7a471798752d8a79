package snapshot

import (
	"context"
	"sync"

	"unicart/internal/domain/cart"
	"unicart/internal/usecase/shared"

	"github.com/google/uuid"
)

// MemoryStore keeps snapshots in process memory. Carts do not survive a
// restart; meant for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, userID uuid.UUID, domain cart.DomainType) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[shared.SnapshotKey(userID, domain)]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Save(_ context.Context, userID uuid.UUID, domain cart.DomainType, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[shared.SnapshotKey(userID, domain)] = append([]byte(nil), data...)
	return nil
}
