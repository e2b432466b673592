package resolver

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/solana/stub"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// testMint returns a deterministic valid 32-byte base58 mint.
func testMint(i byte) string {
	b := make([]byte, 32)
	b[0] = 7
	b[15] = i
	b[31] = i + 1
	return base58.Encode(b)
}

// encodeDerivedAccount builds a derived metadata account body as base64.
func encodeDerivedAccount(name, symbol, uri string) string {
	buf := make([]byte, 65)
	buf[0] = 4
	for _, s := range []string{name, symbol, uri} {
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(s)))
		buf = append(buf, l[:]...)
		buf = append(buf, s...)
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func addDerivedAccount(t *testing.T, rpc *stub.RPCClient, mint, name, symbol, uri string) {
	t.Helper()
	address, err := solana.FindMetadataAddress(mint)
	require.NoError(t, err)
	rpc.AddAccount(address, &solana.AccountInfo{
		Owner: solana.MetadataProgramID,
		Data:  encodeDerivedAccount(name, symbol, uri),
	})
}

func TestBatchFetcher_FetchTable(t *testing.T) {
	rpc := stub.NewRPCClient()

	mintA := testMint(1)
	mintB := testMint(2)
	mintC := testMint(3)

	addDerivedAccount(t, rpc, mintA, "Token A", "TKA", "https://example.com/a.json")
	addDerivedAccount(t, rpc, mintB, "Token B", "TKB", "")
	// mintC has no derived account

	fetcher := NewBatchFetcher(rpc, testLogger())
	table := fetcher.FetchTable(context.Background(), []string{mintA, mintB, mintC})

	require.Len(t, table, 2)

	require.Contains(t, table, mintA)
	assert.Equal(t, "Token A", table[mintA].Name)
	assert.Equal(t, "TKA", table[mintA].Symbol)
	assert.Equal(t, "https://example.com/a.json", table[mintA].URI)

	require.Contains(t, table, mintB)
	assert.Equal(t, "Token B", table[mintB].Name)

	assert.NotContains(t, table, mintC)
}

func TestBatchFetcher_UndecodableAccountSkipped(t *testing.T) {
	rpc := stub.NewRPCClient()

	mint := testMint(4)
	address, err := solana.FindMetadataAddress(mint)
	require.NoError(t, err)
	rpc.AddAccount(address, &solana.AccountInfo{
		Data: base64.StdEncoding.EncodeToString([]byte("garbage")),
	})

	fetcher := NewBatchFetcher(rpc, testLogger())
	table := fetcher.FetchTable(context.Background(), []string{mint})

	assert.Empty(t, table)
}

func TestBatchFetcher_InvalidMintSkipped(t *testing.T) {
	rpc := stub.NewRPCClient()
	valid := testMint(5)
	addDerivedAccount(t, rpc, valid, "Valid", "VLD", "")

	fetcher := NewBatchFetcher(rpc, testLogger())
	table := fetcher.FetchTable(context.Background(), []string{"not-a-mint", valid})

	require.Len(t, table, 1)
	assert.Contains(t, table, valid)
}

// chunkFailRPC fails one specific GetMultipleAccounts call.
type chunkFailRPC struct {
	*stub.RPCClient
	calls  atomic.Int32
	failOn int32
}

func (c *chunkFailRPC) GetMultipleAccounts(ctx context.Context, pubkeys []string) ([]*solana.AccountInfo, error) {
	if c.calls.Add(1) == c.failOn {
		return nil, fmt.Errorf("transport failure")
	}
	return c.RPCClient.GetMultipleAccounts(ctx, pubkeys)
}

func TestBatchFetcher_PartialChunkFailure(t *testing.T) {
	inner := stub.NewRPCClient()

	// 150 mints span two chunks of 100
	mints := make([]string, 150)
	for i := range mints {
		mints[i] = testMint(byte(i))
	}
	for _, mint := range mints {
		addDerivedAccount(t, inner, mint, "Name", "SYM", "")
	}

	rpc := &chunkFailRPC{RPCClient: inner, failOn: 2}

	fetcher := NewBatchFetcher(rpc, testLogger())
	table := fetcher.FetchTable(context.Background(), mints)

	// First chunk's 100 entries survive the second chunk's failure
	assert.Len(t, table, 100)
	for _, mint := range mints[:100] {
		assert.Contains(t, table, mint)
	}
}
