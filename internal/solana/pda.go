package solana

import (
	"crypto/sha256"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// MetadataProgramID is the Metaplex Token Metadata program.
const MetadataProgramID = "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"

const (
	metadataSeed = "metadata"
	pdaMarker    = "ProgramDerivedAddress"
)

// FindMetadataAddress derives the metadata account address for a mint.
// Seeds: ["metadata", metadata_program_id, mint]
func FindMetadataAddress(mint string) (string, error) {
	mintBytes, err := base58.Decode(mint)
	if err != nil {
		return "", fmt.Errorf("decode mint: %w", err)
	}
	if len(mintBytes) != 32 {
		return "", fmt.Errorf("mint %q: expected 32 bytes, got %d", mint, len(mintBytes))
	}

	programBytes, err := base58.Decode(MetadataProgramID)
	if err != nil {
		return "", fmt.Errorf("decode program id: %w", err)
	}

	seeds := [][]byte{
		[]byte(metadataSeed),
		programBytes,
		mintBytes,
	}

	return DeriveProgramAddress(seeds, programBytes)
}

// DeriveProgramAddress derives a Program Derived Address using the Solana
// algorithm:
//  1. Concatenate all seeds with a bump byte
//  2. Append program ID and "ProgramDerivedAddress" marker
//  3. SHA256 hash
//  4. Take the first bump, counting down from 255, whose hash is off the
//     ed25519 curve
func DeriveProgramAddress(seeds [][]byte, programID []byte) (string, error) {
	for bump := 255; bump >= 0; bump-- {
		data := make([]byte, 0)
		for _, seed := range seeds {
			data = append(data, seed...)
		}
		data = append(data, byte(bump))
		data = append(data, programID...)
		data = append(data, []byte(pdaMarker)...)

		hash := sha256.Sum256(data)

		if !isOnCurve(hash[:]) {
			return base58.Encode(hash[:]), nil
		}
	}

	return "", fmt.Errorf("no off-curve address for seeds")
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
