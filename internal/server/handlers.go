package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/ai"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/models"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/pricefeed"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/store"
	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/swapsim"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AnalysisSourceHeader reports whether an analysis came from the model, the
// cache, or the local mock.
const AnalysisSourceHeader = "X-Analysis-Source"

// Insights is the analysis pipeline as the handlers see it.
type Insights interface {
	Analyze(ctx context.Context, req ai.AnalysisRequest) (*ai.Result, error)
}

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Store    *store.MemStore    // In-memory record store
	Insights Insights           // AI analysis pipeline (cache + model + mock)
	Sim      *swapsim.Simulator // Simulated approval/swap facade
	Quoter   pricefeed.Quoter   // Price provider with fallback chain
	Feed     *pricefeed.Hub     // Websocket price feed (optional)
	DevMode  bool               // Enable detailed error responses in development
	Logger   *logrus.Logger     // Structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// withTimeout creates a context with timeout, defaulting to 10 seconds if duration <= 0
func (h *Handlers) withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 10 * time.Second
	}
	return context.WithTimeout(ctx, d)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Analyze runs the AI insights pipeline for a proposed swap. Upstream and
// parse failures are answered with the deterministic mock, so eligible
// requests always get a 200; only validation fails the call.
func (h *Handlers) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	analysisReq := ai.AnalysisRequest{
		FromToken:         strings.TrimSpace(req.FromToken),
		ToToken:           strings.TrimSpace(req.ToToken),
		Amount:            strings.TrimSpace(req.Amount),
		SlippageTolerance: req.SlippageTolerance,
		Deadline:          req.Deadline,
		GasPreference:     req.GasPreference,
		RiskProfile:       req.RiskProfile,
		PreferredDexs:     req.PreferredDexs,
	}
	if err := analysisReq.Validate(); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid analysis request", map[string]any{"reason": err.Error()})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 45*time.Second)
	defer cancel()

	res, err := h.Insights.Analyze(ctx, analysisReq)
	if err != nil {
		// Validate above catches everything Analyze rejects; anything else
		// here is unexpected.
		return h.err(c, http.StatusBadRequest, "invalid analysis request", map[string]any{"reason": err.Error()})
	}

	c.Response().Header().Set(AnalysisSourceHeader, string(res.Source))
	return c.JSON(http.StatusOK, res.Response)
}

// SwapExecute drives the simulated approval and execution steps for a swap.
// A rejected swap is a 200 with success=false; only validation and an
// already-pending operation fail the call.
func (h *Handlers) SwapExecute(c echo.Context) error {
	var req SwapExecuteRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	if strings.TrimSpace(req.FromToken) == "" || strings.TrimSpace(req.ToToken) == "" {
		return h.err(c, http.StatusBadRequest, "fromToken and toToken are required", nil)
	}
	if strings.TrimSpace(req.WalletAddress) == "" {
		return h.err(c, http.StatusBadRequest, "walletAddress is required", nil)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amount": "must be a positive decimal"})
	}

	ctx, cancel := h.withTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if !h.Sim.IsApproved(req.FromToken, amount) {
		if _, err := h.Sim.Approve(ctx, req.FromToken, amount); err != nil {
			if errors.Is(err, swapsim.ErrBusy) {
				return h.err(c, http.StatusConflict, "operation already in flight", nil)
			}
			return h.err(c, http.StatusInternalServerError, "approval failed", map[string]any{"err": err.Error()})
		}
	}

	res, err := h.Sim.Swap(ctx, swapsim.SwapParams{
		FromToken:         req.FromToken,
		ToToken:           req.ToToken,
		Amount:            req.Amount,
		WalletAddress:     req.WalletAddress,
		SlippageTolerance: req.SlippageTolerance,
		Deadline:          req.Deadline,
		GasPreference:     req.GasPreference,
	})
	if err != nil {
		if errors.Is(err, swapsim.ErrBusy) {
			return h.err(c, http.StatusConflict, "operation already in flight", nil)
		}
		return h.err(c, http.StatusInternalServerError, "swap failed", map[string]any{"err": err.Error()})
	}

	return c.JSON(http.StatusOK, SwapExecuteResponse{
		Success:         res.Success,
		TxHash:          res.TxHash,
		FromToken:       req.FromToken,
		ToToken:         req.ToToken,
		Amount:          req.Amount,
		EstimatedOutput: res.EstimatedOutput,
		Message:         res.Message,
	})
}

// SwapStatus returns the transient status of the current operation.
func (h *Handlers) SwapStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Sim.Status())
}

// SwapReset clears the transient status back to idle.
func (h *Handlers) SwapReset(c echo.Context) error {
	h.Sim.Reset()
	return c.JSON(http.StatusOK, h.Sim.Status())
}

// Tokens returns the full token list from the record store.
func (h *Handlers) Tokens(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Tokens())
}

// SettingsSave upserts per-wallet settings and returns the stored record.
func (h *Handlers) SettingsSave(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	wallet := strings.TrimSpace(req.WalletAddress)
	if wallet == "" {
		return h.err(c, http.StatusBadRequest, "walletAddress is required", nil)
	}

	gas := req.GasPreference
	if gas == "" {
		gas = constants.DefaultGasPreference
	}
	if _, ok := constants.GasSettings[gas]; !ok {
		return h.err(c, http.StatusBadRequest, "invalid gasPreference", map[string]any{"gasPreference": "must be auto, fast or instant"})
	}

	risk := req.RiskProfile
	if risk == "" {
		risk = constants.DefaultRiskProfile
	}
	if _, ok := constants.MaxSlippageByRisk[risk]; !ok {
		return h.err(c, http.StatusBadRequest, "invalid riskProfile", map[string]any{"riskProfile": "must be conservative, balanced or aggressive"})
	}

	saved := h.Store.SaveUserSettings(models.UserSettings{
		WalletAddress:     wallet,
		SlippageTolerance: req.SlippageTolerance,
		Deadline:          req.Deadline,
		GasPreference:     models.GasPreference(gas),
		RiskProfile:       models.RiskProfile(risk),
		PreferredDexs:     req.PreferredDexs,
	})
	return c.JSON(http.StatusOK, saved)
}

// SettingsGet returns the settings for a wallet, or 404 when none exist.
func (h *Handlers) SettingsGet(c echo.Context) error {
	wallet := strings.TrimSpace(c.Param("walletAddress"))
	if wallet == "" {
		return h.err(c, http.StatusBadRequest, "invalid walletAddress", nil)
	}

	settings, ok := h.Store.UserSettings(wallet)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Settings not found"})
	}
	return c.JSON(http.StatusOK, settings)
}

// Prices returns the current USD quote table.
func (h *Handlers) Prices(c echo.Context) error {
	ctx, cancel := h.withTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	return c.JSON(http.StatusOK, PricesResponse{Prices: h.Quoter.Quotes(ctx)})
}

// PriceFeed upgrades to the websocket price feed.
func (h *Handlers) PriceFeed(c echo.Context) error {
	if h.Feed == nil {
		return h.err(c, http.StatusBadRequest, "price feed is not configured", nil)
	}
	return h.Feed.Handler(c)
}
