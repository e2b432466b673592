// Package accounts enumerates a wallet's token holdings.
package accounts

import (
	"context"
	"fmt"
	"strconv"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
)

// Token program variants. Holdings under the second are flagged as
// alternate-program accounts.
const (
	TokenProgramID     = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	Token2022ProgramID = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
)

// Enumerator lists token accounts held by a wallet.
type Enumerator struct {
	rpc solana.RPCClient
}

// NewEnumerator creates an enumerator over the RPC client.
func NewEnumerator(rpc solana.RPCClient) *Enumerator {
	return &Enumerator{rpc: rpc}
}

// ListHeldAccounts enumerates the owner's token accounts under both token
// program variants. An RPC failure here is the one error that propagates:
// without enumeration there is nothing to resolve.
func (e *Enumerator) ListHeldAccounts(ctx context.Context, owner string) ([]domain.HeldTokenAccount, error) {
	programs := []struct {
		id        string
		alternate bool
	}{
		{TokenProgramID, false},
		{Token2022ProgramID, true},
	}

	held := make([]domain.HeldTokenAccount, 0)
	for _, program := range programs {
		accounts, err := e.rpc.GetTokenAccountsByOwner(ctx, owner, program.id)
		if err != nil {
			return nil, fmt.Errorf("list token accounts for %s: %w", owner, err)
		}

		for _, acct := range accounts {
			raw, err := strconv.ParseUint(acct.Amount, 10, 64)
			if err != nil {
				continue
			}
			held = append(held, domain.HeldTokenAccount{
				Pubkey:             acct.Pubkey,
				Mint:               acct.Mint,
				RawBalance:         raw,
				Decimals:           acct.Decimals,
				IsAlternateProgram: program.alternate,
			})
		}
	}

	return held, nil
}

// FilterFunded drops zero-balance accounts. Resolving metadata for an
// empty holding is wasted work and must never reach output.
func FilterFunded(accounts []domain.HeldTokenAccount) []domain.HeldTokenAccount {
	funded := make([]domain.HeldTokenAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.IsFunded() {
			funded = append(funded, a)
		}
	}
	return funded
}
