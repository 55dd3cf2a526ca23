package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/ai"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/models"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/store"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/swapsim"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInsights struct {
	res *ai.Result
	err error
}

func (f *fakeInsights) Analyze(_ context.Context, req ai.AnalysisRequest) (*ai.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &ai.Result{Response: ai.MockAnalysis(req), Source: ai.SourceMock}, nil
}

type fakeQuoter struct {
	prices map[string]float64
}

func (f fakeQuoter) Quotes(context.Context) map[string]float64 { return f.prices }

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int   { return r.n % n }

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func newTestHandlers(rng swapsim.Rand) *Handlers {
	return &Handlers{
		Store:    store.New(nil),
		Insights: &fakeInsights{},
		Sim:      swapsim.New(swapsim.DefaultConfig(), rng, swapsim.NopSleeper{}, nil),
		Quoter:   fakeQuoter{prices: map[string]float64{"RBTC": 67500, "USDC": 1}},
	}
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, h(c))
	return rec, c
}

func TestHealth(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	rec, _ := doJSON(t, h.Health, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.OK)
}

func TestTokens_ReturnsSeededList(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	rec, _ := doJSON(t, h.Tokens, http.MethodGet, "/api/tokens", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var tokens []models.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	require.Len(t, tokens, 4)

	symbols := make([]string, 0, len(tokens))
	for _, tk := range tokens {
		symbols = append(symbols, tk.Symbol)
	}
	assert.ElementsMatch(t, []string{"RBTC", "USDC", "RETH", "RUSDT"}, symbols)
}

func TestAnalyze_MockFallback(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	rec, _ := doJSON(t, h.Analyze, http.MethodPost, "/api/gemini/analyze",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mock", rec.Header().Get(AnalysisSourceHeader))

	var resp ai.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Summary, "1 RBTC")
	require.Len(t, resp.RecommendedRoutes, 3)
	assert.True(t, resp.RecommendedRoutes[0].IsRecommended)
}

func TestAnalyze_SourceHeaderFromPipeline(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	resp := &ai.AnalysisResponse{Summary: "cached answer"}
	h.Insights = &fakeInsights{res: &ai.Result{Response: resp, Source: ai.SourceCache}}

	rec, _ := doJSON(t, h.Analyze, http.MethodPost, "/api/gemini/analyze",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"2"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cache", rec.Header().Get(AnalysisSourceHeader))
}

func TestAnalyze_RejectsIneligibleAmount(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	for _, amount := range []string{"0", "-1", "abc", ""} {
		rec, _ := doJSON(t, h.Analyze, http.MethodPost, "/api/gemini/analyze",
			`{"fromToken":"RBTC","toToken":"USDC","amount":"`+amount+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %q", amount)
	}
}

func TestAnalyze_RejectsMalformedBody(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	rec, _ := doJSON(t, h.Analyze, http.MethodPost, "/api/gemini/analyze", `{"fromToken":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSwapExecute_Success(t *testing.T) {
	h := newTestHandlers(fixedRand{f: 0.5}) // under the 0.9 success rate
	rec, _ := doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"1","walletAddress":"0xabc"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp SwapExecuteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "27627.00", resp.EstimatedOutput)
	assert.Len(t, resp.TxHash, 66)
	assert.True(t, strings.HasPrefix(resp.TxHash, "0x"))
	assert.Empty(t, resp.Message)
}

func TestSwapExecute_Failure(t *testing.T) {
	h := newTestHandlers(fixedRand{f: 0.95}) // above the success rate
	rec, _ := doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"2","walletAddress":"0xabc"}`)

	// A rejected swap is still a successful HTTP call.
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SwapExecuteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, swapsim.FailureMessage, resp.Message)
}

func TestSwapExecute_SkipsApprovalWhenCovered(t *testing.T) {
	h := newTestHandlers(fixedRand{f: 0.5})

	rec, _ := doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"5","walletAddress":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second swap for less is already covered by the recorded approval.
	require.True(t, h.Sim.IsApproved("RBTC", mustDecimal(t, "3")))

	rec, _ = doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"3","walletAddress":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSwapExecute_Validation(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	cases := []struct {
		name string
		body string
	}{
		{"missing tokens", `{"amount":"1","walletAddress":"0xabc"}`},
		{"missing wallet", `{"fromToken":"RBTC","toToken":"USDC","amount":"1"}`},
		{"zero amount", `{"fromToken":"RBTC","toToken":"USDC","amount":"0","walletAddress":"0xabc"}`},
		{"bad amount", `{"fromToken":"RBTC","toToken":"USDC","amount":"nope","walletAddress":"0xabc"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestSwapStatusAndReset(t *testing.T) {
	h := newTestHandlers(fixedRand{f: 0.95})

	rec, _ := doJSON(t, h.SwapStatus, http.MethodGet, "/api/swap/status", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st swapsim.TxStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, swapsim.StatusIdle, st.Status)

	doJSON(t, h.SwapExecute, http.MethodPost, "/api/swap/execute",
		`{"fromToken":"RBTC","toToken":"USDC","amount":"1","walletAddress":"0xabc"}`)

	rec, _ = doJSON(t, h.SwapStatus, http.MethodGet, "/api/swap/status", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, swapsim.StatusFailed, st.Status)

	rec, _ = doJSON(t, h.SwapReset, http.MethodPost, "/api/swap/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, swapsim.StatusIdle, st.Status)
}

func TestSettings_SaveThenGet(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	rec, _ := doJSON(t, h.SettingsSave, http.MethodPost, "/api/settings",
		`{"walletAddress":"0xABCDEF","slippageTolerance":0.8,"deadline":20,"gasPreference":"fast","riskProfile":"aggressive","preferredDexs":["RocketSwap"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.UserSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.NotZero(t, saved.ID)
	assert.Equal(t, models.GasPreference("fast"), saved.GasPreference)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/settings/0xABCDEF", nil)
	rec2 := httptest.NewRecorder()
	c := e.NewContext(req, rec2)
	c.SetParamNames("walletAddress")
	c.SetParamValues("0xABCDEF")
	require.NoError(t, h.SettingsGet(c))

	require.Equal(t, http.StatusOK, rec2.Code)

	var got models.UserSettings
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &got))
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, 0.8, got.SlippageTolerance)
}

func TestSettings_DefaultsApplied(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	rec, _ := doJSON(t, h.SettingsSave, http.MethodPost, "/api/settings",
		`{"walletAddress":"0xabc"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.UserSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, models.GasAuto, saved.GasPreference)
	assert.Equal(t, models.RiskBalanced, saved.RiskProfile)
}

func TestSettings_Validation(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	rec, _ := doJSON(t, h.SettingsSave, http.MethodPost, "/api/settings", `{"slippageTolerance":0.5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h.SettingsSave, http.MethodPost, "/api/settings",
		`{"walletAddress":"0xabc","gasPreference":"warp"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, h.SettingsSave, http.MethodPost, "/api/settings",
		`{"walletAddress":"0xabc","riskProfile":"yolo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsGet_NotFound(t *testing.T) {
	h := newTestHandlers(fixedRand{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/settings/0xDEAD", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("walletAddress")
	c.SetParamValues("0xDEAD")
	require.NoError(t, h.SettingsGet(c))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Settings not found"}`, rec.Body.String())
}

func TestPrices(t *testing.T) {
	h := newTestHandlers(fixedRand{})
	rec, _ := doJSON(t, h.Prices, http.MethodGet, "/api/prices", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PricesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 67500.0, resp.Prices["RBTC"])
}
