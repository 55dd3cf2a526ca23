package server

// ErrorResponse is the standard error envelope for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"` // human-readable detail
	Code    int    `json:"code,omitempty"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse is the health check body.
type HealthResponse struct {
	OK bool `json:"ok"`
}

// AnalyzeRequest is the POST /api/gemini/analyze body.
type AnalyzeRequest struct {
	FromToken         string   `json:"fromToken"`
	ToToken           string   `json:"toToken"`
	Amount            string   `json:"amount"`
	SlippageTolerance float64  `json:"slippageTolerance,omitempty"`
	Deadline          int      `json:"deadline,omitempty"`
	GasPreference     string   `json:"gasPreference,omitempty"`
	RiskProfile       string   `json:"riskProfile,omitempty"`
	PreferredDexs     []string `json:"preferredDexs,omitempty"`
}

// SwapExecuteRequest is the POST /api/swap/execute body.
type SwapExecuteRequest struct {
	FromToken         string  `json:"fromToken"`
	ToToken           string  `json:"toToken"`
	Amount            string  `json:"amount"`
	WalletAddress     string  `json:"walletAddress"`
	SlippageTolerance float64 `json:"slippageTolerance,omitempty"`
	Deadline          int     `json:"deadline,omitempty"`
	GasPreference     string  `json:"gasPreference,omitempty"`
}

// SwapExecuteResponse reports the simulated execution outcome.
type SwapExecuteResponse struct {
	Success         bool   `json:"success"`
	TxHash          string `json:"txHash"`
	FromToken       string `json:"fromToken"`
	ToToken         string `json:"toToken"`
	Amount          string `json:"amount"`
	EstimatedOutput string `json:"estimatedOutput"`
	Message         string `json:"message,omitempty"`
}

// SettingsRequest is the POST /api/settings body, keyed by wallet address.
type SettingsRequest struct {
	WalletAddress     string   `json:"walletAddress"`
	SlippageTolerance float64  `json:"slippageTolerance"`
	Deadline          int      `json:"deadline"`
	GasPreference     string   `json:"gasPreference"`
	RiskProfile       string   `json:"riskProfile"`
	PreferredDexs     []string `json:"preferredDexs"`
}

// PricesResponse is the USD quote table.
type PricesResponse struct {
	Prices map[string]float64 `json:"prices"`
}
