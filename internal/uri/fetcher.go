package uri

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultFetchTimeout bounds each candidate request.
const DefaultFetchTimeout = 5 * time.Second

// logoAliases are probed in order; the first populated key wins.
var logoAliases = []string{"image", "logoURI", "logo", "icon"}

// Fetcher retrieves off-chain metadata documents through the gateway list.
type Fetcher struct {
	resolver *Resolver
	client   *http.Client
	timeout  time.Duration
}

// FetcherOption configures Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the per-candidate request budget.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithFetchClient sets a custom http.Client.
func WithFetchClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.client = client
	}
}

// NewFetcher creates a fetcher over the resolver's gateway configuration.
func NewFetcher(resolver *Resolver, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		resolver: resolver,
		client:   &http.Client{},
		timeout:  DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchOffChainLogo fetches the JSON document behind a metadata URI and
// extracts its logo URL. Candidates are tried in order, each bounded by the
// fetch timeout; every failure advances to the next candidate. Never returns
// an error: exhaustion yields nil.
func (f *Fetcher) FetchOffChainLogo(ctx context.Context, raw string) *string {
	for _, candidate := range f.resolver.Candidates(raw) {
		if logo := f.fetchCandidate(ctx, candidate); logo != nil {
			return logo
		}
	}
	return nil
}

func (f *Fetcher) fetchCandidate(ctx context.Context, url string) *string {
	cctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}

	for _, key := range logoAliases {
		value, ok := doc[key].(string)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if resolved := f.resolver.Resolve(value); resolved != "" {
			return &resolved
		}
	}

	return nil
}
