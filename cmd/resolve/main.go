// Package main provides a one-shot wallet resolution CLI. It resolves
// display metadata for every token held by a wallet and prints the result
// as an aligned table or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"solana-wallet-metadata/internal/domain"
	"solana-wallet-metadata/internal/registry"
	"solana-wallet-metadata/internal/session"
	"solana-wallet-metadata/internal/solana"
)

const defaultRegistryURL = "https://tokens.jup.ag/tokens?tags=verified"

func main() {
	// Load .env file if present; real environment wins over file values
	_ = godotenv.Load()

	// Parse flags
	rpcEndpoint := flag.String("rpc-endpoint", os.Getenv("SOLANA_RPC_ENDPOINT"), "Solana RPC HTTP endpoint")
	registryURL := flag.String("registry-url", envOr("TOKEN_REGISTRY_URL", defaultRegistryURL), "Token registry listing URL (empty disables registry lookups)")
	maxConcurrency := flag.Int("max-concurrency", session.DefaultMaxConcurrency, "Concurrent mint resolutions")
	jsonOut := flag.Bool("json", false, "Print the result as JSON instead of a table")
	verbose := flag.Bool("verbose", false, "Verbose pass logging")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall resolution timeout")
	flag.Parse()

	// Validate flags
	if *rpcEndpoint == "" {
		fmt.Fprintln(os.Stderr, "Error: --rpc-endpoint is required (or set SOLANA_RPC_ENDPOINT)")
		os.Exit(1)
	}
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: resolve [flags] <wallet-address>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	owner := flag.Arg(0)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// Create components
	rpc := solana.NewHTTPClient(*rpcEndpoint)

	var registryClient *registry.Client
	if *registryURL != "" {
		registryClient = registry.NewClient(*registryURL)
	}

	orch := session.New(session.Options{
		RPC:            rpc,
		RegistryClient: registryClient,
		MaxConcurrency: *maxConcurrency,
		Verbose:        *verbose,
		Logger:         log.New(os.Stderr, "[session] ", log.LstdFlags),
	})

	// Run one resolution pass
	result, err := orch.Run(ctx, owner)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving wallet: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		printJSON(result)
		return
	}

	printTable(result)
	for _, msg := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
	}
}

// envOr returns the environment value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// printTable writes the resolved holdings as an aligned table to stdout.
func printTable(result *session.Result) {
	if len(result.Tokens) == 0 {
		fmt.Printf("Wallet %s holds no funded token accounts\n", result.Owner)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MINT\tNAME\tSYMBOL\tBALANCE\tSOURCE")
	for _, tok := range result.Tokens {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			tok.Account.Mint,
			tok.Metadata.Name,
			tok.Metadata.Symbol,
			formatBalance(tok.Account),
			tok.Metadata.Source,
		)
	}
	w.Flush()

	fmt.Printf("\n%d tokens resolved in %v\n", len(result.Tokens), result.Duration.Round(time.Millisecond))
}

// formatBalance renders the decimal-adjusted balance without trailing zeros.
func formatBalance(acct domain.HeldTokenAccount) string {
	return strconv.FormatFloat(acct.Balance(), 'f', -1, 64)
}

type tokenJSON struct {
	Mint      string  `json:"mint"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	LogoURI   *string `json:"logoURI,omitempty"`
	Source    string  `json:"source"`
	RawAmount string  `json:"rawAmount"`
	Decimals  int     `json:"decimals"`
	Balance   float64 `json:"balance"`
}

type walletJSON struct {
	Owner      string      `json:"owner"`
	Tokens     []tokenJSON `json:"tokens"`
	Errors     []string    `json:"errors,omitempty"`
	DurationMs int64       `json:"duration_ms"`
}

// printJSON writes the resolved holdings as indented JSON to stdout.
func printJSON(result *session.Result) {
	out := walletJSON{
		Owner:      result.Owner,
		Tokens:     make([]tokenJSON, len(result.Tokens)),
		Errors:     result.Errors,
		DurationMs: result.Duration.Milliseconds(),
	}
	for i, tok := range result.Tokens {
		out.Tokens[i] = tokenJSON{
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

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
