package constants

import "fmt"

// Rootstock testnet chain metadata
const (
	ChainID       = 31
	ChainIDHex    = "0x1f"
	ChainName     = "RSK Testnet"
	NativeSymbol  = "tRBTC"
	RPCURL        = "https://public-node.testnet.rsk.co"
	BlockExplorer = "https://explorer.testnet.rsk.co"
)

// ExplorerURL formats a block explorer link. kind is "address" or "tx".
func ExplorerURL(kind, hash string) string {
	return fmt.Sprintf("%s/%s/%s", BlockExplorer, kind, hash)
}

// SeedToken describes a token created at process start.
type SeedToken struct {
	Symbol   string
	Name     string
	Address  string
	Decimals int
	LogoURL  string
}

// SeedTokens is the fixed Rootstock testnet token list. Symbols are unique.
var SeedTokens = []SeedToken{
	{
		Symbol:   "RBTC",
		Name:     "Rootstock BTC",
		Address:  "0x0000000000000000000000000000000000000000", // native token
		Decimals: 18,
		LogoURL:  "https://assets.coingecko.com/coins/images/24437/standard/rbtc-coingecko.png",
	},
	{
		Symbol:   "USDC",
		Name:     "USD Coin",
		Address:  "0x4D5aB76E731b00E5896189E34BF7b7BFed15Ba97",
		Decimals: 6,
		LogoURL:  "https://assets.coingecko.com/coins/images/6319/standard/usdc.png",
	},
	{
		Symbol:   "RETH",
		Name:     "Rootstock ETH",
		Address:  "0x5D5aB76E731b00E5896189E34BF7b7BFed15Ba98",
		Decimals: 18,
		LogoURL:  "https://assets.coingecko.com/coins/images/279/standard/ethereum.png",
	},
	{
		Symbol:   "RUSDT",
		Name:     "Rootstock Tether",
		Address:  "0x6D5aB76E731b00E5896189E34BF7b7BFed15Ba99",
		Decimals: 6,
		LogoURL:  "https://assets.coingecko.com/coins/images/325/standard/Tether.png",
	},
}

// DexProvider is a liquidity venue on Rootstock.
type DexProvider struct {
	ID            string
	Name          string
	RouterAddress string
}

var DexProviders = []DexProvider{
	{ID: "rocketswap", Name: "RocketSwap", RouterAddress: "0x7D5aB76E731b00E5896189E34BF7b7BFed15Ba91"},
	{ID: "rskswap", Name: "RSK Swap", RouterAddress: "0x8D5aB76E731b00E5896189E34BF7b7BFed15Ba92"},
	{ID: "multihop", Name: "MultiHop", RouterAddress: "0x9D5aB76E731b00E5896189E34BF7b7BFed15Ba93"},
}

// MaxSlippageByRisk caps slippage tolerance per risk profile (percent).
var MaxSlippageByRisk = map[string]float64{
	"conservative": 0.5,
	"balanced":     1.0,
	"aggressive":   2.0,
}

// GasSetting describes one gas preference tier.
type GasSetting struct {
	Multiplier float64
	Gwei       int
}

var GasSettings = map[string]GasSetting{
	"auto":    {Multiplier: 1.0, Gwei: 25},
	"fast":    {Multiplier: 1.2, Gwei: 30},
	"instant": {Multiplier: 1.4, Gwei: 35},
}

// FallbackPrices is the static USD quote table used when every price source
// is unreachable.
var FallbackPrices = map[string]float64{
	"RBTC":  67500,
	"USDC":  1,
	"RETH":  4300,
	"RUSDT": 1,
}

// DemoOutputRate is the fixed conversion rate used by the simulated swap
// path to estimate output.
const DemoOutputRate = 27627

// Defaults applied when a request omits optional tuning fields.
const (
	DefaultSlippageTolerance = 0.5
	DefaultDeadlineMinutes   = 30
	DefaultGasPreference     = "auto"
	DefaultRiskProfile       = "balanced"
)
