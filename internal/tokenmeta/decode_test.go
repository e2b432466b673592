package tokenmeta

import (
	"encoding/binary"
	"encoding/json"
	"strings"
	"testing"

	"solana-wallet-metadata/internal/solana"
)

// encodeDerivedAccount builds a well-formed derived metadata account buffer.
func encodeDerivedAccount(name, symbol, uri string) []byte {
	buf := make([]byte, headerSize)
	buf[0] = 4
	buf = appendLengthPrefixed(buf, name)
	buf = appendLengthPrefixed(buf, symbol)
	buf = appendLengthPrefixed(buf, uri)
	return buf
}

func appendLengthPrefixed(buf []byte, s string) []byte {
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
	buf = append(buf, l[:]...)
	return append(buf, s...)
}

func TestDecodeDerivedRecord_Valid(t *testing.T) {
	data := encodeDerivedAccount("Example Token\x00\x00\x00", "EXM\x00", "https://example.com/meta.json")

	record := DecodeDerivedRecord(data)
	if record == nil {
		t.Fatal("expected record, got nil")
	}

	if record.Name != "Example Token" {
		t.Errorf("expected name 'Example Token', got %q", record.Name)
	}
	if record.Symbol != "EXM" {
		t.Errorf("expected symbol EXM, got %q", record.Symbol)
	}
	if record.URI != "https://example.com/meta.json" {
		t.Errorf("unexpected uri %q", record.URI)
	}
}

func TestDecodeDerivedRecord_ShortBuffer(t *testing.T) {
	for _, size := range []int{0, 1, 64, 65, 68} {
		if record := DecodeDerivedRecord(make([]byte, size)); record != nil {
			t.Errorf("size %d: expected nil, got %+v", size, record)
		}
	}
}

func TestDecodeDerivedRecord_NameCapExceeded(t *testing.T) {
	buf := make([]byte, headerSize)
	buf = appendLengthPrefixed(buf, strings.Repeat("a", maxNameLen+1))

	if record := DecodeDerivedRecord(buf); record != nil {
		t.Errorf("expected nil for oversized name, got %+v", record)
	}
}

func TestDecodeDerivedRecord_SymbolCapExceeded(t *testing.T) {
	buf := make([]byte, headerSize)
	buf = appendLengthPrefixed(buf, "Example")
	buf = appendLengthPrefixed(buf, strings.Repeat("s", maxSymbolLen+1))

	if record := DecodeDerivedRecord(buf); record != nil {
		t.Errorf("expected nil for oversized symbol, got %+v", record)
	}
}

func TestDecodeDerivedRecord_URICapExceeded(t *testing.T) {
	buf := make([]byte, headerSize)
	buf = appendLengthPrefixed(buf, "Example")
	buf = appendLengthPrefixed(buf, "EXM")
	buf = appendLengthPrefixed(buf, strings.Repeat("u", maxURILen+1))

	if record := DecodeDerivedRecord(buf); record != nil {
		t.Errorf("expected nil for oversized uri, got %+v", record)
	}
}

func TestDecodeDerivedRecord_LengthOverrunsBuffer(t *testing.T) {
	buf := make([]byte, headerSize)
	var l [4]byte
	binary.LittleEndian.PutUint32(l[:], 50)
	buf = append(buf, l[:]...)
	buf = append(buf, []byte("short")...)

	if record := DecodeDerivedRecord(buf); record != nil {
		t.Errorf("expected nil for overrunning length prefix, got %+v", record)
	}
}

func TestDecodeDerivedRecord_NonPrintableName(t *testing.T) {
	data := encodeDerivedAccount("\x01\x02\x03", "EXM", "")

	if record := DecodeDerivedRecord(data); record != nil {
		t.Errorf("expected nil for non-printable name, got %+v", record)
	}
}

func TestDecodeDerivedRecord_NameTooLongAfterCleaning(t *testing.T) {
	data := encodeDerivedAccount(strings.Repeat("a", 61), "EXM", "")

	if record := DecodeDerivedRecord(data); record != nil {
		t.Errorf("expected nil for 61-char name, got %+v", record)
	}
}

func TestDecodeDerivedRecord_EmptyNameAndSymbol(t *testing.T) {
	data := encodeDerivedAccount("\x00\x00", "  ", "https://example.com/meta.json")

	if record := DecodeDerivedRecord(data); record != nil {
		t.Errorf("expected nil for empty name and symbol, got %+v", record)
	}
}

func TestDecodeDerivedRecord_EmptyNameKeepsSymbol(t *testing.T) {
	data := encodeDerivedAccount("", "EXM", "")

	record := DecodeDerivedRecord(data)
	if record == nil {
		t.Fatal("expected record with symbol only, got nil")
	}
	if record.Name != "" || record.Symbol != "EXM" {
		t.Errorf("expected empty name and symbol EXM, got %q / %q", record.Name, record.Symbol)
	}
}

func TestDecodeInlineExtension_Valid(t *testing.T) {
	account := &solana.ParsedAccount{
		Program: "spl-token-2022",
		Type:    "mint",
		Extensions: []solana.ParsedExtension{
			{Extension: "transferFeeConfig", State: json.RawMessage(`{}`)},
			{Extension: "tokenMetadata", State: json.RawMessage(
				`{"name":"Brains\u0000\u0000","symbol":" BRAINS ","uri":"ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"}`,
			)},
		},
	}

	record := DecodeInlineExtension(account)
	if record == nil {
		t.Fatal("expected record, got nil")
	}

	if record.Name != "Brains" {
		t.Errorf("expected name Brains, got %q", record.Name)
	}
	if record.Symbol != "BRAINS" {
		t.Errorf("expected symbol BRAINS, got %q", record.Symbol)
	}
	if record.URI != "ipfs://QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG" {
		t.Errorf("unexpected uri %q", record.URI)
	}
}

func TestDecodeInlineExtension_NoMetadataExtension(t *testing.T) {
	account := &solana.ParsedAccount{
		Extensions: []solana.ParsedExtension{
			{Extension: "transferFeeConfig", State: json.RawMessage(`{}`)},
		},
	}

	if record := DecodeInlineExtension(account); record != nil {
		t.Errorf("expected nil without metadata extension, got %+v", record)
	}
}

func TestDecodeInlineExtension_EmptyFields(t *testing.T) {
	account := &solana.ParsedAccount{
		Extensions: []solana.ParsedExtension{
			{Extension: "tokenMetadata", State: json.RawMessage(`{"name":"\u0000","symbol":"  ","uri":"x"}`)},
		},
	}

	if record := DecodeInlineExtension(account); record != nil {
		t.Errorf("expected nil for empty name and symbol, got %+v", record)
	}
}

func TestDecodeInlineExtension_MalformedState(t *testing.T) {
	account := &solana.ParsedAccount{
		Extensions: []solana.ParsedExtension{
			{Extension: "tokenMetadata", State: json.RawMessage(`[1,2,3]`)},
		},
	}

	if record := DecodeInlineExtension(account); record != nil {
		t.Errorf("expected nil for malformed state, got %+v", record)
	}
}

func TestDecodeInlineExtension_NilAccount(t *testing.T) {
	if record := DecodeInlineExtension(nil); record != nil {
		t.Errorf("expected nil for nil account, got %+v", record)
	}
}
