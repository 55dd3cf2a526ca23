package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Prasannaverse13/GeminiSwap-AI-Navigator/internal/constants"
	"github.com/sirupsen/logrus"
)

// coinGeckoIDs maps our token symbols to CoinGecko asset ids.
var coinGeckoIDs = map[string]string{
	"RBTC":  "rootstock",
	"USDC":  "usd-coin",
	"RETH":  "ethereum",
	"RUSDT": "tether",
}

// compareSymbols maps our token symbols to CryptoCompare symbols for the
// backup source.
var compareSymbols = map[string]string{
	"RBTC":  "BTC",
	"USDC":  "USDC",
	"RETH":  "ETH",
	"RUSDT": "USDT",
}

// Client fetches USD quotes for the fixed token set. The fetch chain is
// CoinGecko, then CryptoCompare, then the static fallback table; Quotes
// never fails.
type Client struct {
	GeckoBaseURL   string
	CompareBaseURL string
	HTTP           *http.Client

	logger *logrus.Logger
}

func NewClient(geckoBaseURL, compareBaseURL string, logger *logrus.Logger) *Client {
	geckoBaseURL = strings.TrimRight(strings.TrimSpace(geckoBaseURL), "/")
	if geckoBaseURL == "" {
		geckoBaseURL = "https://api.coingecko.com/api/v3"
	}
	compareBaseURL = strings.TrimRight(strings.TrimSpace(compareBaseURL), "/")
	if compareBaseURL == "" {
		compareBaseURL = "https://min-api.cryptocompare.com"
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Client{
		GeckoBaseURL:   geckoBaseURL,
		CompareBaseURL: compareBaseURL,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("price http %d", e.StatusCode)
	}
	return fmt.Sprintf("price http %d: %s", e.StatusCode, b)
}

// Quotes returns USD prices for the fixed token set. Source failures fall
// through the chain and end on the static table, so the result always
// covers every seed symbol.
func (c *Client) Quotes(ctx context.Context) map[string]float64 {
	prices, err := c.fetchCoinGecko(ctx)
	if err == nil && len(prices) >= len(coinGeckoIDs) {
		return prices
	}
	if err != nil {
		c.logger.WithError(err).Warn("coingecko fetch failed, trying backup source")
	}

	prices, err = c.fetchCryptoCompare(ctx)
	if err == nil && len(prices) > 0 {
		// Top up symbols the backup source did not quote so callers always
		// see the full seed set.
		for sym, p := range constants.FallbackPrices {
			if _, ok := prices[sym]; !ok {
				prices[sym] = p
			}
		}
		return prices
	}
	if err != nil {
		c.logger.WithError(err).Warn("cryptocompare fetch failed, using static prices")
	}

	out := make(map[string]float64, len(constants.FallbackPrices))
	for sym, p := range constants.FallbackPrices {
		out[sym] = p
	}
	return out
}

type geckoMarket struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`
}

func (c *Client) fetchCoinGecko(ctx context.Context) (map[string]float64, error) {
	ids := make([]string, 0, len(coinGeckoIDs))
	for _, id := range coinGeckoIDs {
		ids = append(ids, id)
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("ids", strings.Join(ids, ","))
	q.Set("order", "market_cap_desc")
	q.Set("per_page", "100")
	q.Set("page", "1")
	q.Set("sparkline", "false")

	body, err := c.get(ctx, c.GeckoBaseURL+"/coins/markets?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var markets []geckoMarket
	if err := json.Unmarshal(body, &markets); err != nil {
		return nil, fmt.Errorf("failed to decode coingecko response: %w", err)
	}

	out := make(map[string]float64)
	for _, m := range markets {
		for sym, id := range coinGeckoIDs {
			if id == m.ID {
				out[sym] = m.CurrentPrice
			}
		}
	}
	return out, nil
}

func (c *Client) fetchCryptoCompare(ctx context.Context) (map[string]float64, error) {
	syms := make([]string, 0, len(compareSymbols))
	for _, s := range compareSymbols {
		syms = append(syms, s)
	}

	q := url.Values{}
	q.Set("fsyms", strings.Join(syms, ","))
	q.Set("tsyms", "USD")

	body, err := c.get(ctx, c.CompareBaseURL+"/data/pricemulti?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var quotes map[string]map[string]float64
	if err := json.Unmarshal(body, &quotes); err != nil {
		return nil, fmt.Errorf("failed to decode cryptocompare response: %w", err)
	}

	out := make(map[string]float64)
	for sym, compareSym := range compareSymbols {
		if usd, ok := quotes[compareSym]["USD"]; ok {
			out[sym] = usd
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: res.StatusCode, Body: body}
	}
	return body, nil
}
