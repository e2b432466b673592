package resolver

import (
	"context"
	"errors"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/storage"
	"solana-wallet-metadata/internal/uri"
)

// RegistryLookupStrategy serves entries from the session's registry table.
// Registry logos are already normalized URLs, so they only pass through
// the pure URI rewrite and are never fetched as documents.
type RegistryLookupStrategy struct {
	store    storage.RegistryStore
	resolver *uri.Resolver
}

// NewRegistryLookupStrategy creates the registry lookup strategy.
func NewRegistryLookupStrategy(store storage.RegistryStore, resolver *uri.Resolver) *RegistryLookupStrategy {
	return &RegistryLookupStrategy{
		store:    store,
		resolver: resolver,
	}
}

// Name returns the strategy identifier.
func (s *RegistryLookupStrategy) Name() string {
	return "registry"
}

// Resolve looks the mint up in the registry table.
func (s *RegistryLookupStrategy) Resolve(ctx context.Context, mint string) (*domain.ResolvedMetadata, error) {
	entry, err := s.store.Get(ctx, mint)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	name := entry.Name
	if name == "" {
		name = displayName(mint)
	}
	symbol := entry.Symbol
	if symbol == "" {
		symbol = displaySymbol(mint)
	}

	var logo *string
	if entry.LogoURI != "" {
		if resolved := s.resolver.Resolve(entry.LogoURI); resolved != "" {
			logo = &resolved
		}
	}

	return &domain.ResolvedMetadata{
		Mint:    mint,
		Name:    name,
		Symbol:  symbol,
		LogoURI: logo,
		Source:  domain.SourceRegistry,
	}, nil
}

var _ Strategy = (*RegistryLookupStrategy)(nil)
