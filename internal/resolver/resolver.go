package resolver

import (
	"context"
	"log"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/storage"
	"solana-wallet-metadata/internal/uri"
)

// Resolver runs the strategy chain for one mint. First success wins; no
// strategy is retried within a single call; a strategy error is equivalent
// to "found nothing" and falls through to the next strategy.
type Resolver struct {
	strategies []Strategy
	logger     *log.Logger
}

// NewResolver creates a resolver over an ordered strategy chain.
func NewResolver(strategies []Strategy, logger *log.Logger) *Resolver {
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// ChainOptions carries the per-pass dependencies of the default chain.
type ChainOptions struct {
	RPC          solana.RPCClient
	DerivedTable map[string]*domain.DerivedRecord
	Registry     storage.RegistryStore
	LogoCache    storage.LogoCache
	URIResolver  *uri.Resolver
	Fetcher      *uri.Fetcher
}

// NewDefaultChain assembles the standard strategies in priority order.
func NewDefaultChain(opts ChainOptions) []Strategy {
	return []Strategy{
		NewInlineExtensionStrategy(opts.RPC),
		NewDerivedTableStrategy(opts.DerivedTable, opts.Fetcher, opts.LogoCache),
		NewRegistryLookupStrategy(opts.Registry, opts.URIResolver),
		NewOverrideStrategy(),
		NewDirectLookupStrategy(opts.RPC, opts.Fetcher, opts.LogoCache),
		NewFallbackStrategy(),
	}
}

// Resolve runs the chain for one mint. With the fallback strategy
// installed the result is never nil.
func (r *Resolver) Resolve(ctx context.Context, mint string) *domain.ResolvedMetadata {
	for _, s := range r.strategies {
		meta, err := s.Resolve(ctx, mint)
		if err != nil {
			r.logger.Printf("strategy %s for %s: %v", s.Name(), mint, err)
			continue
		}
		if meta != nil {
			return meta
		}
	}

	// Reached only when the chain was assembled without the terminal
	// fallback; synthesize one so callers always get a result.
	meta, _ := NewFallbackStrategy().Resolve(ctx, mint)
	return meta
}
