package domain

import "math"

// HeldTokenAccount is one token account owned by the connected wallet,
// as reported by the account enumeration call. The mint is always
// chain-reported, never synthesized.
type HeldTokenAccount struct {
	Pubkey             string // token account address
	Mint               string // token mint address
	RawBalance         uint64 // raw token amount, unscaled
	Decimals           int    // mint decimals
	IsAlternateProgram bool   // true for Token-2022 accounts
}

// Balance returns the ui-normalized balance (raw amount scaled by decimals).
func (a HeldTokenAccount) Balance() float64 {
	return float64(a.RawBalance) / math.Pow(10, float64(a.Decimals))
}

// IsFunded reports whether the account holds a nonzero amount.
func (a HeldTokenAccount) IsFunded() bool {
	return a.RawBalance > 0
}
