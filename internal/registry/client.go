// Package registry loads the bulk off-chain token listing.
package registry

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"solana-wallet-metadata/internal/domain"
)

// DefaultTimeout bounds the bulk registry fetch.
const DefaultTimeout = 30 * time.Second

// wrapperKeys are probed in order when the response is not a bare array.
var wrapperKeys = []string{"tokens", "data", "results", "items"}

// Per-field aliases, first populated wins.
var (
	addressAliases = []string{"address", "mint", "mintAddress", "tokenAddress"}
	nameAliases    = []string{"name", "tokenName"}
	symbolAliases  = []string{"symbol", "ticker"}
	logoAliases    = []string{"logoURI", "logoUri", "logo", "icon", "image"}
)

// Client fetches the registry listing once per session.
type Client struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a registry client for the given listing URL.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
		logger: log.New(os.Stdout, "[registry] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches and parses the registry listing. Every failure degrades to
// an empty result; the load is complete either way, so callers never wait
// on a retry loop.
func (c *Client) Load(ctx context.Context) []domain.RegistryEntry {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		c.logger.Printf("registry request: %v", err)
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("registry fetch: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("registry fetch: unexpected status %d", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("registry read: %v", err)
		return nil
	}

	raws := extractEntries(body)
	entries := make([]domain.RegistryEntry, 0, len(raws))
	for _, raw := range raws {
		mint := raw.str(addressAliases...)
		if mint == "" {
			continue
		}
		entries = append(entries, domain.RegistryEntry{
			Mint:     mint,
			Name:     raw.str(nameAliases...),
			Symbol:   raw.str(symbolAliases...),
			Decimals: raw.num("decimals"),
			LogoURI:  raw.str(logoAliases...),
		})
	}

	c.logger.Printf("loaded %d registry entries", len(entries))
	return entries
}

// extractEntries accepts a bare array or an array wrapped under one of the
// known wrapper keys.
func extractEntries(body []byte) []rawEntry {
	var bare []rawEntry
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil
	}

	for _, key := range wrapperKeys {
		raw, ok := wrapped[key]
		if !ok {
			continue
		}
		var entries []rawEntry
		if err := json.Unmarshal(raw, &entries); err == nil {
			return entries
		}
	}

	return nil
}

// rawEntry is an untyped registry entry probed through field aliases.
type rawEntry map[string]interface{}

func (e rawEntry) str(keys ...string) string {
	for _, k := range keys {
		if v, ok := e[k].(string); ok {
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func (e rawEntry) num(keys ...string) int {
	for _, k := range keys {
		if v, ok := e[k].(float64); ok {
			return int(v)
		}
	}
	return 0
}
