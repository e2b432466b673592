package solana

import "context"

// RPCClient defines Solana RPC HTTP interface.
type RPCClient interface {
	// GetAccountInfo retrieves one account with base64 data.
	// Returns nil, nil when the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)

	// GetParsedAccountInfo retrieves one account with jsonParsed data.
	// Returns nil, nil when the account does not exist or the node could
	// not parse its data.
	GetParsedAccountInfo(ctx context.Context, pubkey string) (*ParsedAccount, error)

	// GetMultipleAccounts retrieves many accounts in one call. The result
	// slice is parallel to pubkeys; entries for non-existent accounts are
	// nil, not errors.
	GetMultipleAccounts(ctx context.Context, pubkeys []string) ([]*AccountInfo, error)

	// GetTokenAccountsByOwner retrieves all token accounts owned by the
	// given wallet under one token program.
	GetTokenAccountsByOwner(ctx context.Context, owner, programID string) ([]TokenAccount, error)

	// GetSlot retrieves the current slot.
	GetSlot(ctx context.Context) (int64, error)
}
