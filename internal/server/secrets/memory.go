package secrets

import (
	"context"
	"sync"

	"github.com/inventa-labs/inventa/internal/common"
)

// MemoryStore is an in-process Store for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	keys map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]string)}
}

func (s *MemoryStore) GetSigningKey(_ context.Context, ownerID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[ownerID]
	if !ok {
		return "", common.ErrorNotFound
	}
	return key, nil
}

func (s *MemoryStore) PutSigningKey(_ context.Context, ownerID string, privatePEM string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[ownerID] = privatePEM
	return nil
}

func (s *MemoryStore) RotateSigningKey(_ context.Context, ownerID string, privatePEM string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[ownerID]; !ok {
		return common.ErrorNotFound
	}
	s.keys[ownerID] = privatePEM
	return nil
}
