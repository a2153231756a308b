// Package pricefeed quotes USD prices for depositable assets from the
// CoinLore public API, with a short Redis cache in front and a circuit
// breaker around the upstream.
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"coin-custody.backend/internal/domain/entities"
	domainerrors "coin-custody.backend/internal/domain/errors"
	"coin-custody.backend/pkg/logger"
	"coin-custody.backend/pkg/redis"
)

const (
	defaultBaseURL = "https://api.coinlore.net/api"
	maxAttempts    = 3
	retryBackoff   = 500 * time.Millisecond
)

// coinIDs maps price-feed symbols to CoinLore ticker IDs.
var coinIDs = map[string]string{
	"BTC":   "90",
	"ETH":   "80",
	"BNB":   "2710",
	"USDT":  "2721",
	"USDC":  "3890",
	"MATIC": "33536",
}

type tickerResponse struct {
	ID       string `json:"id"`
	Symbol   string `json:"symbol"`
	PriceUSD string `json:"price_usd"`
}

// Client fetches and caches USD spot prices.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	cacheTTL time.Duration
}

// NewClient creates a price feed client. cacheTTL bounds how stale a served
// price can be.
func NewClient(cacheTTL time.Duration) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "coinlore",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
		cacheTTL: cacheTTL,
	}
}

// NewClientWithBaseURL creates a client against a custom endpoint, used in tests.
func NewClientWithBaseURL(baseURL string, cacheTTL time.Duration) *Client {
	c := NewClient(cacheTTL)
	c.baseURL = baseURL
	return c
}

// GetPriceUSD returns the USD price of a currency's underlying asset.
// Stablecoin variants (USDT_BSC, USDT_POLYGON) share one upstream symbol and
// one cache slot.
func (c *Client) GetPriceUSD(ctx context.Context, currency entities.Currency) (decimal.Decimal, error) {
	cfg, ok := currency.Config()
	if !ok {
		return decimal.Zero, domainerrors.ErrUnsupportedCurrency
	}

	cacheKey := "price:usd:" + cfg.Symbol
	if cached, err := redis.Get(ctx, cacheKey); err == nil {
		if price, perr := decimal.NewFromString(cached); perr == nil {
			return price, nil
		}
	}

	price, err := c.fetch(ctx, cfg.Symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if err := redis.Set(ctx, cacheKey, price.String(), c.cacheTTL); err != nil {
		logger.Warn(ctx, "price cache write failed", zap.String("symbol", cfg.Symbol), zap.Error(err))
	}
	return price, nil
}

func (c *Client) fetch(ctx context.Context, symbol string) (decimal.Decimal, error) {
	coinID, ok := coinIDs[symbol]
	if !ok {
		return decimal.Zero, domainerrors.ErrUnsupportedCurrency
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.fetchOnce(ctx, coinID, symbol)
		})
		if err == nil {
			return result.(decimal.Decimal), nil
		}
		lastErr = err

		logger.Warn(ctx, "price fetch attempt failed",
			zap.String("symbol", symbol),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return decimal.Zero, ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %s: %v", domainerrors.ErrPriceUnavailable, symbol, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, coinID, symbol string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/ticker/?id=%s", c.baseURL, coinID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, err
	}

	var tickers []tickerResponse
	if err := json.Unmarshal(body, &tickers); err != nil {
		return decimal.Zero, fmt.Errorf("malformed ticker response: %w", err)
	}
	if len(tickers) == 0 {
		return decimal.Zero, fmt.Errorf("empty ticker response for %s", symbol)
	}

	price, err := decimal.NewFromString(tickers[0].PriceUSD)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price %q for %s: %w", tickers[0].PriceUSD, symbol, err)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("non-positive price %s for %s", price, symbol)
	}
	return price, nil
}
