package solana

import "encoding/json"

// AccountInfo represents Solana account information with base64 data.
type AccountInfo struct {
	Lamports   uint64 `json:"lamports"`
	Owner      string `json:"owner"`
	Data       string `json:"data"` // base64 encoded
	Executable bool   `json:"executable"`
	RentEpoch  uint64 `json:"rentEpoch"`
}

// ParsedAccount represents account information decoded by the RPC node's
// jsonParsed encoding. Extensions is non-nil only for accounts whose owning
// program publishes typed extension records (Token-2022 mints).
type ParsedAccount struct {
	Owner      string
	Program    string // owning program name, e.g. "spl-token-2022"
	Type       string // parsed account type, e.g. "mint"
	Decimals   int
	Extensions []ParsedExtension
}

// ParsedExtension is one typed extension record from a jsonParsed account.
// State is kept raw so callers can decode the per-type payload themselves.
type ParsedExtension struct {
	Extension string          `json:"extension"`
	State     json.RawMessage `json:"state"`
}

// TokenAccount is one token account returned by getTokenAccountsByOwner.
// Amount is the raw unscaled token amount exactly as the RPC node reports
// it (a decimal string).
type TokenAccount struct {
	Pubkey   string
	Mint     string
	Amount   string
	Decimals int
	UIAmount float64
}
