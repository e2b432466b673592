// Package resolver runs the ordered metadata resolution chain.
package resolver

import (
	"context"

	"solana-wallet-metadata/internal/domain"
)

// Strategy attempts to resolve metadata for one mint.
type Strategy interface {
	// Resolve attempts resolution for the mint. A nil result with nil
	// error means the strategy found nothing and the caller falls through
	// to the next strategy.
	Resolve(ctx context.Context, mint string) (*domain.ResolvedMetadata, error)

	// Name returns the strategy identifier used in logs.
	Name() string
}
