package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an in-memory llms.Model that records calls.
type fakeModel struct {
	reply string
	err   error
	calls int
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	f.calls++
	return f.reply, f.err
}

func TestNewAdvisor_RequiresAPIKey(t *testing.T) {
	_, err := NewAdvisor(AdvisorConfig{})
	assert.Error(t, err)
}

func TestAnalyze_EligibilityGate(t *testing.T) {
	cases := []struct {
		name string
		req  AnalysisRequest
	}{
		{"absent amount", AnalysisRequest{FromToken: "RBTC", ToToken: "USDC"}},
		{"zero amount", AnalysisRequest{FromToken: "RBTC", ToToken: "USDC", Amount: "0"}},
		{"negative amount", AnalysisRequest{FromToken: "RBTC", ToToken: "USDC", Amount: "-1"}},
		{"non-numeric amount", AnalysisRequest{FromToken: "RBTC", ToToken: "USDC", Amount: "abc"}},
		{"missing fromToken", AnalysisRequest{ToToken: "USDC", Amount: "1"}},
		{"missing toToken", AnalysisRequest{FromToken: "RBTC", Amount: "1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeModel{reply: goodReply}
			adv := NewAdvisorWithModel(m, nil)

			_, err := adv.Analyze(context.Background(), tc.req)
			assert.Error(t, err)
			assert.Zero(t, m.calls, "ineligible request must not reach the model")
		})
	}
}

func TestAnalyze_ModelReplyDecoded(t *testing.T) {
	m := &fakeModel{reply: goodReply}
	adv := NewAdvisorWithModel(m, nil)

	out, err := adv.Analyze(context.Background(), AnalysisRequest{
		FromToken: "RBTC", ToToken: "USDC", Amount: "1",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, "Swapping 1 RBTC for USDC looks favorable.", out.Summary)
	require.Len(t, out.RecommendedRoutes, 1)
}

func TestAnalyze_UpstreamError(t *testing.T) {
	m := &fakeModel{err: errors.New("rate limited")}
	adv := NewAdvisorWithModel(m, nil)

	_, err := adv.Analyze(context.Background(), AnalysisRequest{
		FromToken: "RBTC", ToToken: "USDC", Amount: "1",
	})
	assert.Error(t, err)
}

func TestAnalyze_ExtractionErrorSurfaced(t *testing.T) {
	m := &fakeModel{reply: "no json here"}
	adv := NewAdvisorWithModel(m, nil)

	_, err := adv.Analyze(context.Background(), AnalysisRequest{
		FromToken: "RBTC", ToToken: "USDC", Amount: "1",
	})

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonNoJSON, ee.Reason)
}

func TestBuildPrompt_Defaults(t *testing.T) {
	p := buildPrompt(AnalysisRequest{FromToken: "RBTC", ToToken: "USDC", Amount: "1"})

	assert.Contains(t, p, "From Token: RBTC")
	assert.Contains(t, p, "To Token: USDC")
	assert.Contains(t, p, "Amount: 1")
	assert.Contains(t, p, "Slippage Tolerance: 0.5%")
	assert.Contains(t, p, "Risk Profile: balanced")
	assert.Contains(t, p, `"isRecommended": true`)
}
