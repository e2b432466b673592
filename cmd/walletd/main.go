// Package main provides the wallet token metadata service:
// - HTTP API: resolve any wallet's held tokens to display metadata
// - Optional watch mode: track one wallet's token accounts and re-resolve on change
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"solana-wallet-metadata/internal/observability"
	"solana-wallet-metadata/internal/registry"
	"solana-wallet-metadata/internal/session"
	"solana-wallet-metadata/internal/solana"
	"solana-wallet-metadata/internal/watch"
)

const defaultRegistryURL = "https://tokens.jup.ag/tokens?tags=verified"

// Server holds all components of the wallet metadata service.
type Server struct {
	// Configuration
	wsEndpoint string
	watchOwner string
	cacheTTL   time.Duration

	// Components
	orch   *session.Orchestrator
	logger *log.Logger

	// State
	mu       sync.Mutex
	started  time.Time
	passes   int
	lastPass time.Time
	watched  int
	cache    map[string]cacheEntry
}

type cacheEntry struct {
	result     *session.Result
	resolvedAt time.Time
}

func main() {
	// Load .env file if present; real environment wins over file values
	_ = godotenv.Load()

	// Parse flags (env vars as defaults)
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint")
	wsEndpoint := flag.String("ws-endpoint", os.Getenv("SOLANA_WS_ENDPOINT"), "Solana WebSocket endpoint (enables watch mode)")
	registryURL := flag.String("registry-url", envOr("TOKEN_REGISTRY_URL", defaultRegistryURL), "Token registry listing URL (empty disables registry lookups)")
	listenAddr := flag.String("listen-addr", ":8080", "HTTP listen address")
	maxConcurrency := flag.Int("max-concurrency", session.DefaultMaxConcurrency, "Concurrent mint resolutions per pass")
	cacheTTL := flag.Duration("cache-ttl", 30*time.Second, "How long a resolved wallet is served from cache")
	watchOwner := flag.String("watch-owner", os.Getenv("WATCH_OWNER"), "Wallet to keep fresh via account subscriptions (requires --ws-endpoint)")
	verbose := flag.Bool("verbose", false, "Verbose pass logging")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[walletd] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *rpcEndpoint == "" {
		logger.Fatal("--rpc-endpoint is required")
	}
	if *watchOwner != "" && *wsEndpoint == "" {
		logger.Fatal("--watch-owner requires --ws-endpoint")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())

	// Create components
	rpc := solana.NewHTTPClient(*rpcEndpoint)

	// Probe the endpoint so a bad URL surfaces at startup, not on the first request
	probeCtx, probeCancel := context.WithTimeout(ctx, 15*time.Second)
	if slot, err := rpc.GetSlot(probeCtx); err != nil {
		logger.Printf("RPC endpoint probe failed (continuing): %v", err)
	} else {
		logger.Printf("Connected to RPC endpoint (slot %d)", slot)
	}
	probeCancel()

	var registryClient *registry.Client
	if *registryURL != "" {
		registryClient = registry.NewClient(*registryURL)
	} else {
		logger.Println("Registry lookups disabled")
	}

	orch := session.New(session.Options{
		RPC:            rpc,
		RegistryClient: registryClient,
		MaxConcurrency: *maxConcurrency,
		Verbose:        *verbose,
		Logger:         log.New(os.Stdout, "[session] ", log.LstdFlags),
	})

	server := &Server{
		wsEndpoint: *wsEndpoint,
		watchOwner: *watchOwner,
		cacheTTL:   *cacheTTL,
		orch:       orch,
		logger:     logger,
		started:    time.Now(),
		cache:      make(map[string]cacheEntry),
	}

	// Channel to signal completion
	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		// Wait for second signal for immediate shutdown
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	// Start HTTP server
	go server.startHTTPServer(*listenAddr)

	// Run the service
	err := server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Run starts the service and blocks until context cancellation.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("Starting wallet metadata service...")

	if s.watchOwner != "" {
		return s.runWatchLoop(ctx)
	}

	<-ctx.Done()
	return ctx.Err()
}

// runWatchLoop keeps one wallet fresh: resolve it, watch its token
// accounts, and re-resolve whenever any of them changes. The watcher is
// rebuilt after each change because the funded account set may have changed.
func (s *Server) runWatchLoop(ctx context.Context) error {
	owner := s.watchOwner
	s.logger.Printf("Watch mode enabled for wallet %s", owner)

	result, err := s.resolveWallet(ctx, owner)
	for err != nil {
		s.logger.Printf("Initial pass for %s failed: %v", owner, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(10 * time.Second):
		}
		result, err = s.resolveWallet(ctx, owner)
	}

	for {
		pubkeys := make([]string, 0, len(result.Tokens))
		for _, tok := range result.Tokens {
			pubkeys = append(pubkeys, tok.Account.Pubkey)
		}

		if len(pubkeys) == 0 {
			s.logger.Printf("No funded accounts for %s, rechecking in 60s", owner)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(60 * time.Second):
			}
			if fresh, err := s.resolveWallet(ctx, owner); err == nil {
				result = fresh
			}
			continue
		}

		changed, cleanup, err := s.watchAccounts(ctx, pubkeys)
		if err != nil {
			s.logger.Printf("Watch setup failed: %v, retrying in 10s", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Second):
			}
			continue
		}

		select {
		case <-ctx.Done():
			cleanup()
			return ctx.Err()
		case pubkey := <-changed:
			s.logger.Printf("Account %s changed, re-resolving %s", pubkey, owner)
		}
		cleanup()

		if fresh, err := s.resolveWallet(ctx, owner); err == nil {
			result = fresh
		} else {
			s.logger.Printf("Re-resolve for %s failed: %v", owner, err)
		}
	}
}

// watchAccounts builds a fresh WebSocket client and watcher over the
// account set. The returned cleanup tears both down.
func (s *Server) watchAccounts(ctx context.Context, pubkeys []string) (<-chan string, func(), error) {
	ws, err := solana.NewWSClient(ctx, s.wsEndpoint, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("connect websocket: %w", err)
	}

	changed := make(chan string, 64)
	watcher := watch.NewWatcher(ws, func(pubkey string) {
		observability.RecordAccountNotification()
		select {
		case changed <- pubkey:
		default:
		}
	}, watch.WithLogger(log.New(os.Stdout, "[watch] ", log.LstdFlags)))

	if err := watcher.Watch(ctx, pubkeys); err != nil {
		ws.Close()
		return nil, nil, err
	}

	observability.UpdateWatchedAccounts(watcher.Watched())
	s.mu.Lock()
	s.watched = watcher.Watched()
	s.mu.Unlock()

	cleanup := func() {
		watcher.Close()
		ws.Close()
		observability.UpdateWatchedAccounts(0)
		s.mu.Lock()
		s.watched = 0
		s.mu.Unlock()
	}
	return changed, cleanup, nil
}

// resolveWallet runs one pass and records the outcome in metrics and the
// response cache.
func (s *Server) resolveWallet(ctx context.Context, owner string) (*session.Result, error) {
	start := time.Now()
	result, err := s.orch.Run(ctx, owner)
	if err != nil {
		observability.RecordPass("error", time.Since(start).Seconds(), 0)
		return nil, err
	}

	for _, tok := range result.Tokens {
		observability.RecordResolution(string(tok.Metadata.Source))
	}
	observability.RecordPass("success", result.Duration.Seconds(), len(result.Tokens))
	observability.SetRegistryEntries(s.orch.RegistrySize(ctx))

	s.mu.Lock()
	s.passes++
	s.lastPass = time.Now()
	s.cache[owner] = cacheEntry{result: result, resolvedAt: time.Now()}
	s.mu.Unlock()

	return result, nil
}

// startHTTPServer starts the HTTP server for the wallet API and
// health/metrics/status.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	// Status endpoint
	mux.HandleFunc("/status", s.handleStatus)

	// Wallet resolution API
	mux.HandleFunc("GET /v1/wallet/{owner}/tokens", s.handleWalletTokens)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// TokenResponse is one resolved holding in the wallet response.
type TokenResponse struct {
	Mint      string  `json:"mint"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	LogoURI   *string `json:"logoURI,omitempty"`
	Source    string  `json:"source"`
	RawAmount string  `json:"rawAmount"`
	Decimals  int     `json:"decimals"`
	Balance   float64 `json:"balance"`
}

// WalletResponse is the JSON response for the wallet tokens endpoint.
type WalletResponse struct {
	Owner      string          `json:"owner"`
	Tokens     []TokenResponse `json:"tokens"`
	Errors     []string        `json:"errors,omitempty"`
	ResolvedAt time.Time       `json:"resolved_at"`
	DurationMs int64           `json:"duration_ms"`
}

// handleWalletTokens resolves a wallet (or serves the cached pass) as JSON.
func (s *Server) handleWalletTokens(w http.ResponseWriter, r *http.Request) {
	owner := r.PathValue("owner")

	s.mu.Lock()
	entry, ok := s.cache[owner]
	s.mu.Unlock()

	var result *session.Result
	resolvedAt := entry.resolvedAt
	if ok && time.Since(entry.resolvedAt) <= s.cacheTTL {
		result = entry.result
	} else {
		fresh, err := s.resolveWallet(r.Context(), owner)
		if err != nil {
			s.logger.Printf("Resolve %s: %v", owner, err)
			http.Error(w, "wallet enumeration failed", http.StatusBadGateway)
			return
		}
		result = fresh
		resolvedAt = time.Now()
	}

	resp := WalletResponse{
		Owner:      owner,
		Tokens:     make([]TokenResponse, len(result.Tokens)),
		Errors:     result.Errors,
		ResolvedAt: resolvedAt,
		DurationMs: result.Duration.Milliseconds(),
	}
	for i, tok := range result.Tokens {
		resp.Tokens[i] = TokenResponse{
			Mint:      tok.Account.Mint,
			Name:      tok.Metadata.Name,
			Symbol:    tok.Metadata.Symbol,
			LogoURI:   tok.Metadata.LogoURI,
			Source:    string(tok.Metadata.Source),
			RawAmount: strconv.FormatUint(tok.Account.RawBalance, 10),
			Decimals:  tok.Account.Decimals,
			Balance:   tok.Account.Balance(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status          string    `json:"status"`
	Uptime          string    `json:"uptime"`
	PassesRun       int       `json:"passes_run"`
	LastPass        time.Time `json:"last_pass,omitzero"`
	WatchedAccounts int       `json:"watched_accounts"`
	RegistryEntries int       `json:"registry_entries"`
	CachedWallets   int       `json:"cached_wallets"`
}

// handleStatus returns service status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := StatusResponse{
		Status:          "running",
		Uptime:          time.Since(s.started).String(),
		PassesRun:       s.passes,
		LastPass:        s.lastPass,
		WatchedAccounts: s.watched,
		CachedWallets:   len(s.cache),
	}
	s.mu.Unlock()
	resp.RegistryEntries = s.orch.RegistrySize(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
