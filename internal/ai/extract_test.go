package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodReply = `Here is the analysis you asked for:
{
  "summary": "Swapping 1 RBTC for USDC looks favorable.",
  "insights": ["Liquidity is deep", "Low congestion"],
  "recommendedRoutes": [
    {
      "provider": "RocketSwap",
      "routeType": "Direct swap",
      "path": ["RBTC", "USDC"],
      "output": {"amount": "27627.00", "token": "USDC"},
      "gas": {"amount": "0.0001", "token": "RBTC"},
      "slippage": 0.05,
      "improvement": 1.2,
      "isRecommended": true
    }
  ],
  "marketConditions": "RBTC trending up."
}`

func TestExtractAnalysis_ObjectInProse(t *testing.T) {
	out, err := extractAnalysis(goodReply)
	require.NoError(t, err)

	assert.Equal(t, "Swapping 1 RBTC for USDC looks favorable.", out.Summary)
	require.Len(t, out.RecommendedRoutes, 1)
	assert.Equal(t, "RocketSwap", out.RecommendedRoutes[0].Provider)
	assert.True(t, out.RecommendedRoutes[0].IsRecommended)
	assert.Equal(t, "27627.00", out.RecommendedRoutes[0].Output.Amount)
}

func TestExtractAnalysis_NoJSON(t *testing.T) {
	_, err := extractAnalysis("I cannot help with that request.")

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonNoJSON, ee.Reason)
}

func TestExtractAnalysis_UnbalancedDelimiters(t *testing.T) {
	_, err := extractAnalysis("closing } before any opening {")

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonNoJSON, ee.Reason)
}

func TestExtractAnalysis_InvalidJSON(t *testing.T) {
	// Two separate objects make the first-to-last span undecodable.
	_, err := extractAnalysis(`{"summary": "a"} and also {"summary": "b"}`)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonInvalidJSON, ee.Reason)
}

func TestExtractAnalysis_BracesInProse(t *testing.T) {
	// Explanatory prose with braces around the object breaks the heuristic.
	reply := "Note {this caveat} first.\n" + goodReply + "\nAlso {that}."
	_, err := extractAnalysis(reply)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonInvalidJSON, ee.Reason)
}

func TestExtractAnalysis_MissingFields(t *testing.T) {
	_, err := extractAnalysis(`{"summary": "only a summary"}`)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonMissingFields, ee.Reason)
	assert.Contains(t, ee.Detail, "insights")
	assert.Contains(t, ee.Detail, "recommendedRoutes")
	assert.Contains(t, ee.Detail, "marketConditions")
}

func TestExtractAnalysis_MissingMarketConditions(t *testing.T) {
	reply := `{
		"summary": "Swapping looks fine.",
		"insights": ["Liquidity is deep"],
		"recommendedRoutes": [{"provider": "RocketSwap", "path": ["RBTC", "USDC"]}]
	}`
	_, err := extractAnalysis(reply)

	var ee *ExtractError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ReasonMissingFields, ee.Reason)
	assert.Equal(t, "marketConditions", ee.Detail)
}
