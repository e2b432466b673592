package resolver

import (
	"context"
	"encoding/base64"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/storage"
	"solana-wallet-metadata/internal/tokenmeta"
	"solana-wallet-metadata/internal/uri"
)

// DirectLookupStrategy fetches a single derived metadata account. It
// covers mints the batch pass missed, e.g. accounts added after the
// batch snapshot was taken.
type DirectLookupStrategy struct {
	rpc     solana.RPCClient
	fetcher *uri.Fetcher
	cache   storage.LogoCache
}

// NewDirectLookupStrategy creates the single-account lookup strategy.
func NewDirectLookupStrategy(rpc solana.RPCClient, fetcher *uri.Fetcher, cache storage.LogoCache) *DirectLookupStrategy {
	return &DirectLookupStrategy{
		rpc:     rpc,
		fetcher: fetcher,
		cache:   cache,
	}
}

// Name returns the strategy identifier.
func (s *DirectLookupStrategy) Name() string {
	return "direct_lookup"
}

// Resolve derives the mint's metadata account and decodes it.
func (s *DirectLookupStrategy) Resolve(ctx context.Context, mint string) (*domain.ResolvedMetadata, error) {
	address, err := solana.FindMetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	account, err := s.rpc.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(account.Data)
	if err != nil {
		return nil, nil
	}

	record := tokenmeta.DecodeDerivedRecord(raw)
	if record == nil {
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

var _ Strategy = (*DirectLookupStrategy)(nil)
