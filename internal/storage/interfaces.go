package storage

import (
	"context"

	"solana-wallet-metadata/internal/domain"
)

// RegistryStore provides access to the bulk token registry table.
// The table is loaded once per session and read-only afterwards.
type RegistryStore interface {
	// Put inserts or replaces an entry. Duplicate mints are last-write-wins;
	// the registry upstream is assumed deduplicated but the store must not
	// reject repeats. Returns ErrInvalidInput for an empty mint.
	Put(ctx context.Context, e *domain.RegistryEntry) error

	// Get retrieves an entry by mint address. Returns ErrNotFound if not exists.
	Get(ctx context.Context, mint string) (*domain.RegistryEntry, error)

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)
}

// LogoCache maps mint addresses to resolved logo URLs for one resolution
// pass. "Never attempted" and "attempted, found nothing" are distinct states:
// Get reports attempted=false only when no Put/PutMiss happened for the mint.
type LogoCache interface {
	// Get returns the cached logo (nil for a recorded miss) and whether a
	// fetch was ever attempted for this mint.
	Get(ctx context.Context, mint string) (logo *string, attempted bool)

	// Put records a successfully resolved logo URL. Overwriting with the
	// same value is safe.
	Put(ctx context.Context, mint, logo string) error

	// PutMiss records that a fetch was attempted and found nothing.
	PutMiss(ctx context.Context, mint string) error
}
