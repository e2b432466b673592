// Package session provides wallet resolution pass orchestration.
// It coordinates: registry load → account enumeration → derived-record
// prefetch → concurrent per-mint resolution.
package session

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/alitto/pond/v2"

	"solana-wallet-metadata/internal/accounts"
	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/registry"
	"solana-wallet-metadata/internal/resolver"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/storage"
	"solana-wallet-metadata/internal/storage/memory"
	"solana-wallet-metadata/internal/uri"
)

// DefaultMaxConcurrency bounds the per-mint resolution fan-out.
const DefaultMaxConcurrency = 8

// Orchestrator runs resolution passes for wallets. The registry table is
// loaded on the first pass and reused by every later pass; the derived
// record table and the logo cache are rebuilt per pass.
type Orchestrator struct {
	rpc            solana.RPCClient
	registryClient *registry.Client
	registryStore  storage.RegistryStore
	uriResolver    *uri.Resolver
	fetcher        *uri.Fetcher
	enumerator     *accounts.Enumerator
	batch          *resolver.BatchFetcher
	maxConcurrency int
	verbose        bool
	logger         *log.Logger

	mu             sync.Mutex
	registryLoaded bool
}

// Options for creating an Orchestrator.
type Options struct {
	// Required
	RPC solana.RPCClient

	// Optional registry source. When nil the registry strategy runs
	// against an empty table and always misses.
	RegistryClient *registry.Client

	// Optional overrides, defaulted when zero
	RegistryStore  storage.RegistryStore
	URIResolver    *uri.Resolver
	Fetcher        *uri.Fetcher
	MaxConcurrency int
	Verbose        bool
	Logger         *log.Logger
}

// New creates a new Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[session] ", log.LstdFlags)
	}

	maxConcurrency := opts.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}

	registryStore := opts.RegistryStore
	if registryStore == nil {
		registryStore = memory.NewRegistryStore()
	}

	uriResolver := opts.URIResolver
	if uriResolver == nil {
		uriResolver = uri.NewResolver(uri.DefaultConfig())
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = uri.NewFetcher(uriResolver)
	}

	return &Orchestrator{
		rpc:            opts.RPC,
		registryClient: opts.RegistryClient,
		registryStore:  registryStore,
		uriResolver:    uriResolver,
		fetcher:        fetcher,
		enumerator:     accounts.NewEnumerator(opts.RPC),
		batch:          resolver.NewBatchFetcher(opts.RPC, logger),
		maxConcurrency: maxConcurrency,
		verbose:        opts.Verbose,
		logger:         logger,
	}
}

// ResolvedHolding pairs one held token account with its display metadata.
type ResolvedHolding struct {
	Account  domain.HeldTokenAccount
	Metadata domain.ResolvedMetadata
}

// Result contains the outcome of one resolution pass. Errors lists
// per-mint degradations; those mints still carry fallback metadata.
type Result struct {
	Owner    string
	Tokens   []ResolvedHolding
	Errors   []string
	Duration time.Duration
}

// Run executes one full resolution pass for a wallet.
// Phases:
//  1. Load registry table (first pass only)
//  2. Enumerate held token accounts, discard zero balances
//  3. Batch-fetch derived metadata records for all funded mints
//  4. Resolve each mint concurrently through the strategy chain
//  5. Order results by balance descending, then mint ascending
//
// Only phase 2 can fail the pass; everything after degrades per mint.
func (o *Orchestrator) Run(ctx context.Context, owner string) (*Result, error) {
	start := time.Now()
	result := &Result{Owner: owner}

	// Phase 1: registry table
	o.mu.Lock()
	if !o.registryLoaded {
		o.loadRegistry(ctx)
		o.registryLoaded = true
	} else {
		o.log("Phase 1: Reusing loaded registry table")
	}
	o.mu.Unlock()

	// Phase 2: enumerate held token accounts
	o.log("Phase 2: Enumerating token accounts for %s...", owner)
	held, err := o.enumerator.ListHeldAccounts(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("phase 2 (enumerate accounts) failed: %w", err)
	}
	funded := accounts.FilterFunded(held)
	o.log("  Found %d token accounts (%d funded)", len(held), len(funded))

	if len(funded) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	// Phase 3: batch-fetch derived records
	o.log("Phase 3: Fetching derived metadata records...")
	mints := make([]string, len(funded))
	for i, acct := range funded {
		mints[i] = acct.Mint
	}
	table := o.batch.FetchTable(ctx, mints)
	o.log("  Derived records found for %d of %d mints", len(table), len(mints))

	// Phase 4: resolve each mint concurrently
	o.log("Phase 4: Resolving %d mints...", len(funded))
	cache := memory.NewLogoCache()
	chain := resolver.NewDefaultChain(resolver.ChainOptions{
		RPC:          o.rpc,
		DerivedTable: table,
		Registry:     o.registryStore,
		LogoCache:    cache,
		URIResolver:  o.uriResolver,
		Fetcher:      o.fetcher,
	})
	res := resolver.NewResolver(chain, o.logger)

	resolved := make([]domain.ResolvedMetadata, len(funded))
	pool := pond.NewPool(o.maxConcurrency, pond.WithContext(ctx))
	for i, acct := range funded {
		pool.Submit(func() {
			resolved[i] = *res.Resolve(ctx, acct.Mint)
		})
	}
	pool.StopAndWait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Tokens = make([]ResolvedHolding, len(funded))
	for i, meta := range resolved {
		result.Tokens[i] = ResolvedHolding{Account: funded[i], Metadata: meta}
		if meta.Source == domain.SourceUnresolved {
			result.Errors = append(result.Errors, fmt.Sprintf("resolve %s: no source produced metadata, fallback applied", meta.Mint))
		}
	}

	// Phase 5: deterministic ordering
	sort.Slice(result.Tokens, func(i, j int) bool {
		bi, bj := result.Tokens[i].Account.Balance(), result.Tokens[j].Account.Balance()
		if bi != bj {
			return bi > bj
		}
		return result.Tokens[i].Account.Mint < result.Tokens[j].Account.Mint
	})

	result.Duration = time.Since(start)
	o.log("Pass completed in %v: %d tokens, %d unresolved", result.Duration, len(result.Tokens), len(result.Errors))

	return result, nil
}

// loadRegistry fills the registry store from the configured listing URL.
// Load failures degrade to an empty table; the pass continues.
func (o *Orchestrator) loadRegistry(ctx context.Context) {
	if o.registryClient == nil {
		o.log("Phase 1: No registry configured, skipping")
		return
	}

	o.log("Phase 1: Loading token registry...")
	entries := o.registryClient.Load(ctx)
	for i := range entries {
		if err := o.registryStore.Put(ctx, &entries[i]); err != nil {
			o.logger.Printf("store registry entry %s: %v", entries[i].Mint, err)
		}
	}
	o.log("  Registry table ready: %d entries", len(entries))
}

// RegistrySize reports the number of loaded registry entries.
func (o *Orchestrator) RegistrySize(ctx context.Context) int {
	n, err := o.registryStore.Len(ctx)
	if err != nil {
		return 0
	}
	return n
}

func (o *Orchestrator) log(format string, args ...interface{}) {
	if o.verbose {
		o.logger.Printf(format, args...)
	}
}
