package stub

import (
	"context"

	"solana-wallet-metadata/internal/solana"
)

// RPCClient implements solana.RPCClient for testing.
type RPCClient struct {
	Accounts       map[string]*solana.AccountInfo
	ParsedAccounts map[string]*solana.ParsedAccount
	TokenAccounts  map[ownerProgramKey][]solana.TokenAccount
	Slot           int64
}

type ownerProgramKey struct {
	owner     string
	programID string
}

// NewRPCClient creates a new stub RPC client.
func NewRPCClient() *RPCClient {
	return &RPCClient{
		Accounts:       make(map[string]*solana.AccountInfo),
		ParsedAccounts: make(map[string]*solana.ParsedAccount),
		TokenAccounts:  make(map[ownerProgramKey][]solana.TokenAccount),
	}
}

// GetAccountInfo retrieves an account from the stub store.
// Returns nil for unknown pubkeys, matching the live client.
func (c *RPCClient) GetAccountInfo(_ context.Context, pubkey string) (*solana.AccountInfo, error) {
	return c.Accounts[pubkey], nil
}

// GetParsedAccountInfo retrieves a parsed account from the stub store.
func (c *RPCClient) GetParsedAccountInfo(_ context.Context, pubkey string) (*solana.ParsedAccount, error) {
	return c.ParsedAccounts[pubkey], nil
}

// GetMultipleAccounts retrieves accounts from the stub store.
// The returned slice is parallel to pubkeys; unknown pubkeys are nil.
func (c *RPCClient) GetMultipleAccounts(_ context.Context, pubkeys []string) ([]*solana.AccountInfo, error) {
	accounts := make([]*solana.AccountInfo, len(pubkeys))
	for i, pk := range pubkeys {
		accounts[i] = c.Accounts[pk]
	}
	return accounts, nil
}

// GetTokenAccountsByOwner retrieves token accounts from the stub store.
func (c *RPCClient) GetTokenAccountsByOwner(_ context.Context, owner, programID string) ([]solana.TokenAccount, error) {
	return c.TokenAccounts[ownerProgramKey{owner, programID}], nil
}

// GetSlot retrieves the configured slot.
func (c *RPCClient) GetSlot(_ context.Context) (int64, error) {
	return c.Slot, nil
}

// AddAccount adds an account to the stub store.
func (c *RPCClient) AddAccount(pubkey string, info *solana.AccountInfo) {
	c.Accounts[pubkey] = info
}

// AddParsedAccount adds a parsed account to the stub store.
func (c *RPCClient) AddParsedAccount(pubkey string, account *solana.ParsedAccount) {
	c.ParsedAccounts[pubkey] = account
}

// AddTokenAccounts adds token accounts for an owner and program to the stub store.
func (c *RPCClient) AddTokenAccounts(owner, programID string, accounts []solana.TokenAccount) {
	c.TokenAccounts[ownerProgramKey{owner, programID}] = accounts
}

var _ solana.RPCClient = (*RPCClient)(nil)
