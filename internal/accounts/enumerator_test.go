package accounts

import (
	"context"
	"fmt"
	"testing"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/solana/stub"
)

func TestEnumerator_ListHeldAccounts_BothPrograms(t *testing.T) {
	rpc := stub.NewRPCClient()
	rpc.AddTokenAccounts("owner1", TokenProgramID, []solana.TokenAccount{
		{Pubkey: "acct1", Mint: "mint1", Amount: "1500000", Decimals: 6},
	})
	rpc.AddTokenAccounts("owner1", Token2022ProgramID, []solana.TokenAccount{
		{Pubkey: "acct2", Mint: "mint2", Amount: "42", Decimals: 0},
	})

	held, err := NewEnumerator(rpc).ListHeldAccounts(context.Background(), "owner1")
	if err != nil {
		t.Fatalf("ListHeldAccounts: %v", err)
	}

	if len(held) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(held))
	}

	if held[0].Pubkey != "acct1" || held[0].Mint != "mint1" || held[0].RawBalance != 1500000 || held[0].Decimals != 6 {
		t.Errorf("unexpected first account: %+v", held[0])
	}
	if held[0].IsAlternateProgram {
		t.Error("legacy program account flagged as alternate")
	}

	if held[1].Mint != "mint2" || held[1].RawBalance != 42 {
		t.Errorf("unexpected second account: %+v", held[1])
	}
	if !held[1].IsAlternateProgram {
		t.Error("alternate program account not flagged")
	}
}

func TestEnumerator_ListHeldAccounts_Empty(t *testing.T) {
	rpc := stub.NewRPCClient()

	held, err := NewEnumerator(rpc).ListHeldAccounts(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("ListHeldAccounts: %v", err)
	}
	if len(held) != 0 {
		t.Errorf("expected no accounts, got %d", len(held))
	}
}

func TestEnumerator_UnparsableAmountSkipped(t *testing.T) {
	rpc := stub.NewRPCClient()
	rpc.AddTokenAccounts("owner1", TokenProgramID, []solana.TokenAccount{
		{Pubkey: "acct1", Mint: "mint1", Amount: "not-a-number", Decimals: 6},
		{Pubkey: "acct2", Mint: "mint2", Amount: "7", Decimals: 0},
	})

	held, err := NewEnumerator(rpc).ListHeldAccounts(context.Background(), "owner1")
	if err != nil {
		t.Fatalf("ListHeldAccounts: %v", err)
	}

	if len(held) != 1 {
		t.Fatalf("expected 1 account, got %d", len(held))
	}
	if held[0].Mint != "mint2" {
		t.Errorf("unexpected account: %+v", held[0])
	}
}

// errRPC fails every token account listing.
type errRPC struct {
	*stub.RPCClient
}

func (errRPC) GetTokenAccountsByOwner(context.Context, string, string) ([]solana.TokenAccount, error) {
	return nil, fmt.Errorf("rpc unavailable")
}

func TestEnumerator_ListHeldAccounts_Error(t *testing.T) {
	rpc := errRPC{stub.NewRPCClient()}

	_, err := NewEnumerator(rpc).ListHeldAccounts(context.Background(), "owner1")
	if err == nil {
		t.Fatal("expected error when enumeration fails")
	}
}

func TestFilterFunded(t *testing.T) {
	accounts := []domain.HeldTokenAccount{
		{Mint: "funded1", RawBalance: 100, Decimals: 2},
		{Mint: "empty", RawBalance: 0, Decimals: 6},
		{Mint: "funded2", RawBalance: 1, Decimals: 0},
	}

	funded := FilterFunded(accounts)

	if len(funded) != 2 {
		t.Fatalf("expected 2 funded accounts, got %d", len(funded))
	}
	if funded[0].Mint != "funded1" || funded[1].Mint != "funded2" {
		t.Errorf("unexpected funded set: %+v", funded)
	}
}

func TestHeldTokenAccount_Balance(t *testing.T) {
	a := domain.HeldTokenAccount{Mint: "m", RawBalance: 1500000, Decimals: 6}
	if a.Balance() != 1.5 {
		t.Errorf("expected balance 1.5, got %v", a.Balance())
	}
}
