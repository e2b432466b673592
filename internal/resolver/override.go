package resolver

import (
	"context"

	"solana-wallet-metadata/internal/domain"
)

// WrappedSOLMint is the wrapped native token mint. Its canonical metadata
// source is unreliable, so it is resolved by a fixed override.
const WrappedSOLMint = "So11111111111111111111111111111111111111112"

const wrappedSOLLogo = "https://raw.githubusercontent.com/solana-labs/token-list/main/assets/mainnet/So11111111111111111111111111111111111111112/logo.png"

// OverrideStrategy resolves one distinguished mint from a hardcoded entry.
type OverrideStrategy struct{}

// NewOverrideStrategy creates the hardcoded override strategy.
func NewOverrideStrategy() *OverrideStrategy {
	return &OverrideStrategy{}
}

// Name returns the strategy identifier.
func (s *OverrideStrategy) Name() string {
	return "override"
}

// Resolve matches only the wrapped native mint.
func (s *OverrideStrategy) Resolve(_ context.Context, mint string) (*domain.ResolvedMetadata, error) {
	if mint != WrappedSOLMint {
		return nil, nil
	}

	logo := wrappedSOLLogo
	return &domain.ResolvedMetadata{
		Mint:    mint,
		Name:    "Wrapped SOL",
		Symbol:  "SOL",
		LogoURI: &logo,
		Source:  domain.SourceOverride,
	}, nil
}

var _ Strategy = (*OverrideStrategy)(nil)
