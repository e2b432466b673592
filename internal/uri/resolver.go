// Package uri normalizes token metadata URIs into fetchable HTTPS URLs.
package uri

import (
	"regexp"
	"strings"
)

// Config holds the statically configured gateway endpoints.
type Config struct {
	// IPFSGateways is the ordered list of public gateways. The first entry
	// is the primary used for rewriting; the fetcher walks all of them.
	IPFSGateways []string
	// ArchivalGateway serves ar:// content.
	ArchivalGateway string
	// RegistryOrigin resolves root-relative logo paths.
	RegistryOrigin string
}

// DefaultConfig returns the default gateway configuration.
func DefaultConfig() Config {
	return Config{
		IPFSGateways: []string{
			"https://ipfs.io/ipfs/",
			"https://cloudflare-ipfs.com/ipfs/",
			"https://gateway.pinata.cloud/ipfs/",
			"https://dweb.link/ipfs/",
		},
		ArchivalGateway: "https://arweave.net/",
		RegistryOrigin:  "https://tokens.jup.ag",
	}
}

// Content identifiers are 46+ character alphanumeric tokens. Three surface
// forms are recognized, in priority order: an explicit scheme (ipfs://CID),
// a gateway path (/ipfs/CID), and a gateway subdomain (https://CID.ipfs.*).
var (
	cidSchemeRe    = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://([a-zA-Z0-9]{46,})`)
	cidPathRe      = regexp.MustCompile(`/ipfs/([a-zA-Z0-9]{46,})`)
	cidSubdomainRe = regexp.MustCompile(`^https?://([a-zA-Z0-9]{46,})\.ipfs\.`)
)

// ExtractContentID pulls a content identifier out of a gateway-flavored URI.
// Query strings and trailing path segments after the CID are tolerated.
func ExtractContentID(uri string) (string, bool) {
	for _, re := range []*regexp.Regexp{cidSchemeRe, cidPathRe, cidSubdomainRe} {
		if m := re.FindStringSubmatch(uri); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// Resolver rewrites raw metadata URIs against the configured gateways.
type Resolver struct {
	config Config
}

// NewResolver creates a resolver over the given gateway configuration.
func NewResolver(config Config) *Resolver {
	return &Resolver{config: config}
}

// Resolve normalizes a raw URI into a fetchable URL. Pure, no network I/O.
// Empty or blank input resolves to empty.
func (r *Resolver) Resolve(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if cid, ok := ExtractContentID(raw); ok {
		return r.config.IPFSGateways[0] + cid
	}

	if rest, ok := strings.CutPrefix(raw, "ar://"); ok {
		return r.config.ArchivalGateway + rest
	}

	if strings.HasPrefix(raw, "/") {
		return r.config.RegistryOrigin + raw
	}

	return raw
}

// Candidates builds the ordered fetch candidate list for a raw URI: every
// gateway when a content id is detected, otherwise the single resolved URL.
func (r *Resolver) Candidates(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if cid, ok := ExtractContentID(raw); ok {
		urls := make([]string, 0, len(r.config.IPFSGateways))
		for _, gw := range r.config.IPFSGateways {
			urls = append(urls, gw+cid)
		}
		return urls
	}

	if resolved := r.Resolve(raw); resolved != "" {
		return []string{resolved}
	}

	return nil
}
