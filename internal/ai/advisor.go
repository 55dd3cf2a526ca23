package ai

import (
	"context"
	"fmt"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// AdvisorConfig holds configuration for the AI advisor.
type AdvisorConfig struct {
	// API key for the model gateway. Required.
	APIKey string
	// Model name as understood by the gateway, e.g. "google/gemini-2.0-flash-001".
	Model string
	// BaseURL overrides the gateway endpoint (OpenAI-compatible API).
	BaseURL string

	Logger *logrus.Logger
}

// Advisor turns a proposed swap into route recommendations using an LLM.
type Advisor struct {
	llm    llms.Model
	logger *logrus.Logger
}

// NewAdvisor creates an Advisor with its own LLM client.
func NewAdvisor(cfg AdvisorConfig) (*Advisor, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.Model == "" {
		cfg.Model = "google/gemini-2.0-flash-001"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}

	llm, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	cfg.Logger.WithField("model", cfg.Model).Info("initialized AI advisor")

	return &Advisor{llm: llm, logger: cfg.Logger}, nil
}

// NewAdvisorWithModel builds an Advisor around an existing model. Used by
// tests and by callers that manage the client themselves.
func NewAdvisorWithModel(m llms.Model, logger *logrus.Logger) *Advisor {
	if logger == nil {
		logger = logrus.New()
	}
	return &Advisor{llm: m, logger: logger}
}

// Analyze submits the swap to the model as a single-turn prompt and decodes
// the recommendation object out of its reply. The eligibility gate runs
// first: an invalid or non-positive amount never reaches the model.
func (a *Advisor) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis request: %w", err)
	}

	prompt := buildPrompt(req)

	reply, err := llms.GenerateFromSinglePrompt(
		ctx,
		a.llm,
		prompt,
		llms.WithMaxTokens(1024),
	)
	if err != nil {
		return nil, fmt.Errorf("LLM analysis failed: %w", err)
	}

	out, err := extractAnalysis(reply)
	if err != nil {
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"pair":   req.FromToken + "/" + req.ToToken,
		"routes": len(out.RecommendedRoutes),
	}).Debug("model analysis extracted")

	return out, nil
}

// buildPrompt renders the swap into the instruction the model answers. The
// instruction pins the exact JSON shape the extractor expects.
func buildPrompt(req AnalysisRequest) string {
	slippage := req.SlippageTolerance
	if slippage == 0 {
		slippage = constants.DefaultSlippageTolerance
	}
	risk := req.RiskProfile
	if risk == "" {
		risk = constants.DefaultRiskProfile
	}

	return fmt.Sprintf(`
You are GeminiSwap AI Navigator, a DeFi trading assistant.

Analyze the following swap request:
- From Token: %s
- To Token: %s
- Amount: %s
- Slippage Tolerance: %g%%
- Risk Profile: %s

Based on current market conditions on Rootstock, provide:
1. A brief summary of the swap (1-2 sentences)
2. 2-3 insights about this swap
3. 3 recommended swap routes with the following details for each:
   - Provider name
   - Route type (direct or multi-hop)
   - Path of tokens
   - Expected output amount
   - Gas estimate
   - Slippage estimate
   - Improvement percentage vs market average
4. A market condition statement about the current price trends

Format your response as JSON with the following structure:
{
  "summary": "Summary text here",
  "insights": ["Insight 1", "Insight 2"],
  "recommendedRoutes": [
    {
      "provider": "Provider name",
      "routeType": "Direct swap or Multi-hop",
      "path": ["TokenA", "TokenB"],
      "output": {
        "amount": "123.45",
        "token": "TokenB"
      },
      "gas": {
        "amount": "0.0001",
        "token": "RBTC"
      },
      "slippage": 0.05,
      "improvement": 1.2,
      "isRecommended": true
    }
  ],
  "marketConditions": "Market condition statement"
}

Return only the JSON object, no surrounding text.
Mark the best route with "isRecommended": true.
`, req.FromToken, req.ToToken, req.Amount, slippage, risk)
}
