package solana

import (
	"testing"

	"github.com/mr-tron/base58"
)

const (
	testMintSOL  = "So11111111111111111111111111111111111111112"
	testMintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

func TestFindMetadataAddress_Deterministic(t *testing.T) {
	first, err := FindMetadataAddress(testMintSOL)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	second, err := FindMetadataAddress(testMintSOL)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	if first != second {
		t.Errorf("expected deterministic derivation, got %q and %q", first, second)
	}
}

func TestFindMetadataAddress_DecodesTo32Bytes(t *testing.T) {
	addr, err := FindMetadataAddress(testMintUSDC)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		t.Fatalf("derived address is not base58: %v", err)
	}
	if len(decoded) != 32 {
		t.Errorf("expected 32-byte address, got %d bytes", len(decoded))
	}
}

func TestFindMetadataAddress_DistinctAcrossMints(t *testing.T) {
	solAddr, err := FindMetadataAddress(testMintSOL)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	usdcAddr, err := FindMetadataAddress(testMintUSDC)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	if solAddr == usdcAddr {
		t.Errorf("expected distinct addresses for distinct mints, both %q", solAddr)
	}
}

func TestFindMetadataAddress_InvalidMint(t *testing.T) {
	cases := []struct {
		name string
		mint string
	}{
		{"not base58", "0O0O0O0O0O!!"},
		{"too short", "abc"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := FindMetadataAddress(tc.mint); err == nil {
				t.Errorf("expected error for mint %q", tc.mint)
			}
		})
	}
}

func TestDeriveProgramAddress_OffCurve(t *testing.T) {
	addr, err := FindMetadataAddress(testMintSOL)
	if err != nil {
		t.Fatalf("FindMetadataAddress failed: %v", err)
	}
	decoded, err := base58.Decode(addr)
	if err != nil {
		t.Fatalf("derived address is not base58: %v", err)
	}
	if isOnCurve(decoded) {
		t.Error("derived address must be off the ed25519 curve")
	}
}
