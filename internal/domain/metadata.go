package domain

// ResolvedMetadata is the final display metadata for one mint.
// Produced exactly once per mint per resolution pass; immutable after
// construction. Name and Symbol are always populated; strategies that
// cannot supply a symbol synthesize one before returning.
type ResolvedMetadata struct {
	Mint    string  // token mint address
	Name    string  // display name
	Symbol  string  // display symbol
	LogoURI *string // resolved logo URL (nullable)
	Source  Source  // which strategy produced this result
}

// DerivedRecord is the {name, symbol, uri} triple decoded from a
// program-derived metadata account. Cached per mint for the duration of
// one resolution pass.
type DerivedRecord struct {
	Name   string
	Symbol string
	URI    string // off-chain document URI, may be empty
}

// RegistryEntry is one row of the bulk token registry listing.
// LogoURI holds the raw, unresolved value exactly as the registry
// reported it.
type RegistryEntry struct {
	Mint     string
	Name     string
	Symbol   string
	Decimals int
	LogoURI  string
}
