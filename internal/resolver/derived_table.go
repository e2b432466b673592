package resolver

import (
	"context"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/storage"
	"solana-wallet-metadata/internal/uri"
)

// DerivedTableStrategy serves records precomputed by the batch fetcher,
// resolving logos through the per-pass cache.
type DerivedTableStrategy struct {
	table   map[string]*domain.DerivedRecord
	fetcher *uri.Fetcher
	cache   storage.LogoCache
}

// NewDerivedTableStrategy creates the strategy over a precomputed table.
func NewDerivedTableStrategy(table map[string]*domain.DerivedRecord, fetcher *uri.Fetcher, cache storage.LogoCache) *DerivedTableStrategy {
	return &DerivedTableStrategy{
		table:   table,
		fetcher: fetcher,
		cache:   cache,
	}
}

// Name returns the strategy identifier.
func (s *DerivedTableStrategy) Name() string {
	return "derived_table"
}

// Resolve looks the mint up in the batch table.
func (s *DerivedTableStrategy) Resolve(ctx context.Context, mint string) (*domain.ResolvedMetadata, error) {
	record, ok := s.table[mint]
	if !ok {
		return nil, nil
	}

	name := record.Name
	if name == "" {
		name = displayName(mint)
	}
	symbol := record.Symbol
	if symbol == "" {
		symbol = displaySymbol(mint)
	}

	return &domain.ResolvedMetadata{
		Mint:    mint,
		Name:    name,
		Symbol:  symbol,
		LogoURI: lookupLogo(ctx, s.cache, s.fetcher, mint, record.URI),
		Source:  domain.SourceDerivedAccount,
	}, nil
}

// lookupLogo consults the cache before fetching the off-chain document,
// recording both hits and misses so repeated mints within a pass never
// re-fetch the same document.
func lookupLogo(ctx context.Context, cache storage.LogoCache, fetcher *uri.Fetcher, mint, rawURI string) *string {
	if logo, attempted := cache.Get(ctx, mint); attempted {
		return logo
	}

	if rawURI == "" {
		_ = cache.PutMiss(ctx, mint)
		return nil
	}

	logo := fetcher.FetchOffChainLogo(ctx, rawURI)
	if logo == nil {
		_ = cache.PutMiss(ctx, mint)
		return nil
	}

	_ = cache.Put(ctx, mint, *logo)
	return logo
}

var _ Strategy = (*DerivedTableStrategy)(nil)
