package models

import "time"

// GasPreference selects how aggressively gas is priced for a swap.
type GasPreference string

const (
	GasAuto    GasPreference = "auto"
	GasFast    GasPreference = "fast"
	GasInstant GasPreference = "instant"
)

// RiskProfile tunes how much slippage the AI navigator is allowed to trade
// away for better routes.
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskBalanced     RiskProfile = "balanced"
	RiskAggressive   RiskProfile = "aggressive"
)

// Token is an ERC-20 style token on the Rootstock testnet. Tokens are
// immutable once created; the store seeds them at startup.
type Token struct {
	ID       int    `json:"id"`
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURL  string `json:"logoUrl"`
	Testnet  bool   `json:"isTestnet"`
}

// SwapRoute is a persisted route record. Never mutated after creation.
type SwapRoute struct {
	ID              int       `json:"id"`
	FromTokenID     int       `json:"fromTokenId"`
	ToTokenID       int       `json:"toTokenId"`
	Amount          string    `json:"amount"`
	Provider        string    `json:"provider"`
	EstimatedOutput string    `json:"estimatedOutput"`
	GasEstimate     string    `json:"gasEstimate"`
	Slippage        float64   `json:"slippage"`
	Improvement     float64   `json:"improvement"`
	Path            []string  `json:"path"`
	ExecutedByUser  bool      `json:"executedByUser"`
	CreatedAt       time.Time `json:"createdAt"`
}

// AIAnalysis captures the text parts of a successful model call for a token
// pair and amount. Append-only.
type AIAnalysis struct {
	ID               int       `json:"id"`
	FromTokenID      int       `json:"fromTokenId"`
	ToTokenID        int       `json:"toTokenId"`
	Amount           string    `json:"amount"`
	Summary          string    `json:"summary"`
	Insights         []string  `json:"insights"`
	MarketConditions string    `json:"marketConditions"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserSettings holds per-wallet swap preferences. The wallet address is the
// sole key; saves for a known wallet overwrite in place.
type UserSettings struct {
	ID                int           `json:"id"`
	WalletAddress     string        `json:"walletAddress"`
	SlippageTolerance float64       `json:"slippageTolerance"`
	Deadline          int           `json:"deadline"`
	GasPreference     GasPreference `json:"gasPreference"`
	RiskProfile       RiskProfile   `json:"riskProfile"`
	PreferredDexs     []string      `json:"preferredDexs"`
	LastUpdated       time.Time     `json:"lastUpdated"`
}
