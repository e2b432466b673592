package memory

import (
	"context"
	"sync"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/storage"
)

// RegistryStore is an in-memory implementation of storage.RegistryStore.
type RegistryStore struct {
	mu     sync.RWMutex
	byMint map[string]*domain.RegistryEntry
}

// NewRegistryStore creates a new in-memory registry store.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		byMint: make(map[string]*domain.RegistryEntry),
	}
}

// Put inserts or replaces an entry. Duplicate mints are last-write-wins.
func (s *RegistryStore) Put(_ context.Context, e *domain.RegistryEntry) error {
	if e == nil || e.Mint == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entryCopy := *e
	s.byMint[e.Mint] = &entryCopy
	return nil
}

// Get retrieves an entry by mint address. Returns ErrNotFound if not exists.
func (s *RegistryStore) Get(_ context.Context, mint string) (*domain.RegistryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.byMint[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}

	entryCopy := *e
	return &entryCopy, nil
}

// Len returns the number of stored entries.
func (s *RegistryStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.byMint), nil
}

var _ storage.RegistryStore = (*RegistryStore)(nil)
