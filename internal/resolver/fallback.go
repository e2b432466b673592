package resolver

import (
	"context"
	"strings"

	"solana-wallet-metadata/internal/domain"
)

// FallbackStrategy synthesizes display metadata from the mint address
// itself. It is the terminal strategy and never fails.
type FallbackStrategy struct{}

// NewFallbackStrategy creates the terminal fallback strategy.
func NewFallbackStrategy() *FallbackStrategy {
	return &FallbackStrategy{}
}

// Name returns the strategy identifier.
func (s *FallbackStrategy) Name() string {
	return "fallback"
}

// Resolve synthesizes metadata from the mint address.
func (s *FallbackStrategy) Resolve(_ context.Context, mint string) (*domain.ResolvedMetadata, error) {
	return &domain.ResolvedMetadata{
		Mint:   mint,
		Name:   displayName(mint),
		Symbol: displaySymbol(mint),
		Source: domain.SourceUnresolved,
	}, nil
}

// displayName shortens a mint address for display.
func displayName(mint string) string {
	if len(mint) <= 10 {
		return mint
	}
	return mint[:6] + "…" + mint[len(mint)-4:]
}

// displaySymbol synthesizes a symbol from the mint's lead characters.
func displaySymbol(mint string) string {
	if len(mint) < 4 {
		return strings.ToUpper(mint)
	}
	return strings.ToUpper(mint[:4])
}

var _ Strategy = (*FallbackStrategy)(nil)
