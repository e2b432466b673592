// Package tokenmeta decodes on-chain token metadata records.
package tokenmeta

import (
	"encoding/binary"
	"encoding/json"
	"regexp"
	"strings"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
)

// Derived metadata account layout:
// - discriminant: u8 (1 byte)
// - update authority: Pubkey (32 bytes)
// - mint: Pubkey (32 bytes)
// - name: String (4-byte LE length + data, max 200 bytes)
// - symbol: String (max 50 bytes)
// - uri: String (max 500 bytes)
const (
	headerSize   = 65
	maxNameLen   = 200
	maxSymbolLen = 50
	maxURILen    = 500
)

// extTokenMetadata is the extension type tag for embedded mint metadata.
const extTokenMetadata = "tokenMetadata"

// printableName accepts cleaned display names. Intentionally permissive
// above the ASCII range; the inline-extension path carries no such filter.
var printableName = regexp.MustCompile(`^[\x{0020}-\x{FFFF}]{1,60}$`)

// DecodeDerivedRecord parses raw bytes of a derived metadata account.
// Malformed layouts return nil, never an error.
func DecodeDerivedRecord(data []byte) *domain.DerivedRecord {
	if len(data) < headerSize+4 {
		return nil
	}

	offset := headerSize

	name, offset, ok := readString(data, offset, maxNameLen)
	if !ok {
		return nil
	}

	symbol, offset, ok := readString(data, offset, maxSymbolLen)
	if !ok {
		return nil
	}

	uri, _, ok := readString(data, offset, maxURILen)
	if !ok {
		return nil
	}

	name = clean(name)
	symbol = clean(symbol)
	uri = clean(uri)

	if name != "" && !printableName.MatchString(name) {
		return nil
	}
	if name == "" && symbol == "" {
		return nil
	}

	return &domain.DerivedRecord{
		Name:   name,
		Symbol: symbol,
		URI:    uri,
	}
}

// DecodeInlineExtension extracts embedded metadata from a parsed mint
// account's extension list. Returns nil if no metadata extension exists
// or both name and symbol are empty after cleaning.
func DecodeInlineExtension(account *solana.ParsedAccount) *domain.DerivedRecord {
	if account == nil {
		return nil
	}

	for _, ext := range account.Extensions {
		if ext.Extension != extTokenMetadata {
			continue
		}

		var state struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
			URI    string `json:"uri"`
		}
		if err := json.Unmarshal(ext.State, &state); err != nil {
			return nil
		}

		name := clean(state.Name)
		symbol := clean(state.Symbol)
		if name == "" && symbol == "" {
			return nil
		}

		return &domain.DerivedRecord{
			Name:   name,
			Symbol: symbol,
			URI:    clean(state.URI),
		}
	}

	return nil
}

// readString reads a length-prefixed string, enforcing the field cap and
// buffer bounds.
func readString(data []byte, offset, maxLen int) (string, int, bool) {
	if offset+4 > len(data) {
		return "", 0, false
	}
	length := int(binary.LittleEndian.Uint32(data[offset:]))
	offset += 4

	if length > maxLen || offset+length > len(data) {
		return "", 0, false
	}

	return string(data[offset : offset+length]), offset + length, true
}

// clean strips embedded null padding and surrounding whitespace.
func clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}
