package memory

import (
	"context"
	"errors"
	"testing"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/storage"
)

func TestRegistryStore_PutAndGet(t *testing.T) {
	store := NewRegistryStore()
	ctx := context.Background()

	entry := &domain.RegistryEntry{
		Mint:     "mint1",
		Name:     "Wrapped SOL",
		Symbol:   "SOL",
		Decimals: 9,
		LogoURI:  "/logos/sol.png",
	}

	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	result, err := store.Get(ctx, "mint1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if result.Name != "Wrapped SOL" {
		t.Errorf("Name mismatch: got %s, want Wrapped SOL", result.Name)
	}
	if result.Symbol != "SOL" {
		t.Errorf("Symbol mismatch: got %s, want SOL", result.Symbol)
	}
}

func TestRegistryStore_DuplicateMintLastWriteWins(t *testing.T) {
	store := NewRegistryStore()
	ctx := context.Background()

	first := &domain.RegistryEntry{Mint: "mint1", Name: "First", Symbol: "ONE"}
	second := &domain.RegistryEntry{Mint: "mint1", Name: "Second", Symbol: "TWO"}

	if err := store.Put(ctx, first); err != nil {
		t.Fatalf("First put failed: %v", err)
	}
	if err := store.Put(ctx, second); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}

	result, err := store.Get(ctx, "mint1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if result.Name != "Second" {
		t.Errorf("Expected last write to win, got %s", result.Name)
	}

	n, err := store.Len(ctx)
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 entry after duplicate put, got %d", n)
	}
}

func TestRegistryStore_NotFound(t *testing.T) {
	store := NewRegistryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "nonexistent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestRegistryStore_InvalidInput(t *testing.T) {
	store := NewRegistryStore()
	ctx := context.Background()

	if err := store.Put(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	if err := store.Put(ctx, &domain.RegistryEntry{Mint: ""}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty mint, got %v", err)
	}
}

func TestRegistryStore_ReturnsCopy(t *testing.T) {
	store := NewRegistryStore()
	ctx := context.Background()

	entry := &domain.RegistryEntry{Mint: "mint1", Name: "Original", Symbol: "ORIG"}
	if err := store.Put(ctx, entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	entry.Name = "Mutated"

	result, _ := store.Get(ctx, "mint1")
	if result.Name != "Original" {
		t.Error("Store should return copy, not reference")
	}
}
