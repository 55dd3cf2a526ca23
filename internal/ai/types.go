package ai

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AnalysisRequest describes a proposed swap to analyze. FromToken, ToToken
// and Amount are required; everything else is optional tuning.
type AnalysisRequest struct {
	FromToken         string   `json:"fromToken"`
	ToToken           string   `json:"toToken"`
	Amount            string   `json:"amount"`
	SlippageTolerance float64  `json:"slippageTolerance,omitempty"`
	Deadline          int      `json:"deadline,omitempty"`
	GasPreference     string   `json:"gasPreference,omitempty"`
	RiskProfile       string   `json:"riskProfile,omitempty"`
	PreferredDexs     []string `json:"preferredDexs,omitempty"`
}

// Validate checks required fields and the request-eligibility gate: the
// amount must parse as a decimal strictly greater than zero. Requests that
// fail here must never reach the model.
func (r AnalysisRequest) Validate() error {
	if strings.TrimSpace(r.FromToken) == "" {
		return fmt.Errorf("fromToken is required")
	}
	if strings.TrimSpace(r.ToToken) == "" {
		return fmt.Errorf("toToken is required")
	}
	if strings.TrimSpace(r.Amount) == "" {
		return fmt.Errorf("amount is required")
	}
	amt, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return fmt.Errorf("amount must be a decimal number")
	}
	if !amt.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	return nil
}

// CacheKey identifies a request for the short-lived analysis cache. Only
// the fields that change the model's answer participate.
func (r AnalysisRequest) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s:%g:%s",
		r.FromToken, r.ToToken, strings.TrimSpace(r.Amount), r.SlippageTolerance, r.RiskProfile)
}

// TokenAmount is an amount denominated in a token.
type TokenAmount struct {
	Amount string `json:"amount"`
	Token  string `json:"token"`
}

// RouteRecommendation is one ranked route from the model (or the mock).
type RouteRecommendation struct {
	Provider      string      `json:"provider"`
	RouteType     string      `json:"routeType"`
	Path          []string    `json:"path"`
	Output        TokenAmount `json:"output"`
	Gas           TokenAmount `json:"gas"`
	Slippage      float64     `json:"slippage"`
	Improvement   float64     `json:"improvement"`
	IsRecommended bool        `json:"isRecommended,omitempty"`
}

// AnalysisResponse is the structured recommendation set for a swap.
type AnalysisResponse struct {
	Summary           string                `json:"summary"`
	Insights          []string              `json:"insights"`
	RecommendedRoutes []RouteRecommendation `json:"recommendedRoutes"`
	MarketConditions  string                `json:"marketConditions"`
}
