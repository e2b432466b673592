package resolver

import (
	"context"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/tokenmeta"
)

// InlineExtensionStrategy reads metadata embedded in the mint account
// itself. Authoritative when present: only the mint authority can write
// it, so it cannot be forged by a third party controlling an off-chain
// document.
type InlineExtensionStrategy struct {
	rpc solana.RPCClient
}

// NewInlineExtensionStrategy creates the inline-extension strategy.
func NewInlineExtensionStrategy(rpc solana.RPCClient) *InlineExtensionStrategy {
	return &InlineExtensionStrategy{rpc: rpc}
}

// Name returns the strategy identifier.
func (s *InlineExtensionStrategy) Name() string {
	return "inline_extension"
}

// Resolve queries the mint account's parsed form and decodes an embedded
// metadata extension if one exists.
func (s *InlineExtensionStrategy) Resolve(ctx context.Context, mint string) (*domain.ResolvedMetadata, error) {
	account, err := s.rpc.GetParsedAccountInfo(ctx, mint)
	if err != nil {
		return nil, err
	}

	record := tokenmeta.DecodeInlineExtension(account)
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
		Mint:   mint,
		Name:   name,
		Symbol: symbol,
		Source: domain.SourceInlineExtension,
	}, nil
}

var _ Strategy = (*InlineExtensionStrategy)(nil)
