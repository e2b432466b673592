package memory

import (
	"context"
	"sync"

	"solana-wallet-metadata/internal/storage"
)

// logoEntry records one attempted logo fetch. A nil url is a recorded miss.
type logoEntry struct {
	url *string
}

// LogoCache is an in-memory implementation of storage.LogoCache.
// Absent key means "never attempted"; present key with nil url means
// "attempted, found nothing". The two states stay distinguishable.
type LogoCache struct {
	mu      sync.RWMutex
	entries map[string]logoEntry
}

// NewLogoCache creates a new in-memory logo cache.
func NewLogoCache() *LogoCache {
	return &LogoCache{
		entries: make(map[string]logoEntry),
	}
}

// Get returns the cached logo and whether a fetch was ever attempted.
func (c *LogoCache) Get(_ context.Context, mint string) (*string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[mint]
	if !exists {
		return nil, false
	}
	if e.url == nil {
		return nil, true
	}

	urlCopy := *e.url
	return &urlCopy, true
}

// Put records a successfully resolved logo URL. Idempotent: rewriting the
// same value is safe.
func (c *LogoCache) Put(_ context.Context, mint, logo string) error {
	if mint == "" || logo == "" {
		return storage.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	urlCopy := logo
	c.entries[mint] = logoEntry{url: &urlCopy}
	return nil
}

// PutMiss records that a fetch was attempted and found nothing.
func (c *LogoCache) PutMiss(_ context.Context, mint string) error {
	if mint == "" {
		return storage.ErrInvalidInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A recorded hit is never downgraded to a miss.
	if e, exists := c.entries[mint]; exists && e.url != nil {
		return nil
	}
	c.entries[mint] = logoEntry{}
	return nil
}

var _ storage.LogoCache = (*LogoCache)(nil)
