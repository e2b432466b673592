package resolver

import (
	"context"
	"encoding/base64"
	"log"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/tokenmeta"
)

// batchChunkSize respects the transport's multi-account batch limit.
const batchChunkSize = 100

// BatchFetcher precomputes derived metadata records for many mints in a
// few round trips.
type BatchFetcher struct {
	rpc    solana.RPCClient
	logger *log.Logger
}

// NewBatchFetcher creates a batch fetcher over the RPC client.
func NewBatchFetcher(rpc solana.RPCClient, logger *log.Logger) *BatchFetcher {
	return &BatchFetcher{
		rpc:    rpc,
		logger: logger,
	}
}

// FetchTable derives each mint's metadata account address, fetches the
// accounts in chunks, and decodes every present account. The table is
// keyed by the original mint, not the derived address. A failed chunk is
// logged and skipped; partial tables are valid results.
func (f *BatchFetcher) FetchTable(ctx context.Context, mints []string) map[string]*domain.DerivedRecord {
	table := make(map[string]*domain.DerivedRecord)

	type derivedMint struct {
		mint    string
		address string
	}

	derived := make([]derivedMint, 0, len(mints))
	for _, mint := range mints {
		address, err := solana.FindMetadataAddress(mint)
		if err != nil {
			f.logger.Printf("derive metadata address for %s: %v", mint, err)
			continue
		}
		derived = append(derived, derivedMint{mint: mint, address: address})
	}

	// Chunks go out sequentially to respect provider batch and rate limits.
	for start := 0; start < len(derived); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(derived) {
			end = len(derived)
		}
		chunk := derived[start:end]

		addresses := make([]string, len(chunk))
		for i, d := range chunk {
			addresses[i] = d.address
		}

		accounts, err := f.rpc.GetMultipleAccounts(ctx, addresses)
		if err != nil {
			f.logger.Printf("fetch chunk of %d metadata accounts: %v", len(chunk), err)
			continue
		}

		for i, account := range accounts {
			// A nil account means no derived record exists for that mint
			if i >= len(chunk) || account == nil {
				continue
			}

			raw, err := base64.StdEncoding.DecodeString(account.Data)
			if err != nil {
				continue
			}

			if record := tokenmeta.DecodeDerivedRecord(raw); record != nil {
				table[chunk[i].mint] = record
			}
		}
	}

	return table
}
