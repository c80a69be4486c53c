// Package quotes fetches currency exchange rates and stock prices from
// external quote APIs. Failures never cross this boundary as errors: a
// misconfigured key or unreachable provider yields an empty list and a
// warning, so reports degrade instead of failing.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/common"
	"github.com/Veraticus/money-pulse/internal/model"
)

// Default provider endpoints.
const (
	DefaultCurrencyURL = "https://api.apilayer.com/exchangerates_data/latest"
	DefaultStockURL    = "https://finnhub.io/api/v1/quote"
)

// Config holds provider endpoints and credentials.
type Config struct {
	CurrencyURL string
	StockURL    string
	CurrencyKey string
	StockKey    string
	// Base is the currency everything is quoted against.
	Base string
}

// Client talks to the currency and stock quote providers.
type Client struct {
	cfg        Config
	httpClient *http.Client
	retry      common.RetryOptions
}

// NewClient creates a quote client, filling in default endpoints.
func NewClient(cfg Config) *Client {
	if cfg.CurrencyURL == "" {
		cfg.CurrencyURL = DefaultCurrencyURL
	}
	if cfg.StockURL == "" {
		cfg.StockURL = DefaultStockURL
	}
	if cfg.Base == "" {
		cfg.Base = "RUB"
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
		},
	}
}

type ratesResponse struct {
	Rates map[string]json.Number `json:"rates"`
}

// CurrencyRates returns the rate of each requested currency against the
// base. The provider quotes base-to-symbol, so the published rate is the
// inverse, rounded to two places. The base currency itself is skipped.
func (c *Client) CurrencyRates(ctx context.Context, currencies []string) []model.CurrencyRate {
	rates := []model.CurrencyRate{}
	if len(currencies) == 0 {
		return rates
	}
	if c.cfg.CurrencyKey == "" {
		slog.Warn("Currency rates skipped: no API key configured")
		return rates
	}

	u, err := url.Parse(c.cfg.CurrencyURL)
	if err != nil {
		slog.Warn("Invalid currency endpoint", "url", c.cfg.CurrencyURL, "error", err)
		return rates
	}
	q := u.Query()
	q.Set("symbols", strings.Join(currencies, ","))
	q.Set("base", c.cfg.Base)
	u.RawQuery = q.Encode()

	var parsed ratesResponse
	err = common.WithRetry(ctx, func() error {
		return c.getJSON(ctx, u.String(), http.Header{"apikey": []string{c.cfg.CurrencyKey}}, &parsed)
	}, c.retry)
	if err != nil {
		slog.Warn("Failed to fetch currency rates", "error", err)
		return rates
	}

	one := decimal.NewFromInt(1)
	for _, currency := range currencies {
		if currency == c.cfg.Base {
			continue
		}
		raw, ok := parsed.Rates[currency]
		if !ok {
			slog.Warn("Currency missing from provider response", "currency", currency)
			continue
		}
		value, err := decimal.NewFromString(raw.String())
		if err != nil || value.IsZero() {
			slog.Warn("Unusable rate from provider", "currency", currency, "value", raw.String())
			continue
		}
		rates = append(rates, model.CurrencyRate{
			Currency: currency,
			Rate:     one.DivRound(value, 2),
		})
	}

	slog.Info("Currency rates fetched", "requested", len(currencies), "received", len(rates))
	return rates
}

type stockQuote struct {
	Current json.Number `json:"c"`
}

// StockPrices returns the current price of each requested symbol. Symbols
// the provider cannot quote are skipped with a warning.
func (c *Client) StockPrices(ctx context.Context, stocks []string) []model.StockPrice {
	prices := []model.StockPrice{}
	if len(stocks) == 0 {
		return prices
	}
	if c.cfg.StockKey == "" {
		slog.Warn("Stock prices skipped: no API key configured")
		return prices
	}

	for _, symbol := range stocks {
		u, err := url.Parse(c.cfg.StockURL)
		if err != nil {
			slog.Warn("Invalid stock endpoint", "url", c.cfg.StockURL, "error", err)
			return prices
		}
		q := u.Query()
		q.Set("symbol", symbol)
		q.Set("token", c.cfg.StockKey)
		u.RawQuery = q.Encode()

		var quote stockQuote
		err = common.WithRetry(ctx, func() error {
			return c.getJSON(ctx, u.String(), nil, &quote)
		}, c.retry)
		if err != nil {
			slog.Warn("Failed to fetch stock price", "stock", symbol, "error", err)
			continue
		}

		price, err := decimal.NewFromString(quote.Current.String())
		if err != nil || price.IsZero() {
			slog.Warn("No price available for stock", "stock", symbol)
			continue
		}
		prices = append(prices, model.StockPrice{
			Stock: symbol,
			Price: price.Round(2),
		})
	}

	slog.Info("Stock prices fetched", "requested", len(stocks), "received", len(prices))
	return prices
}

// getJSON performs a GET and decodes the JSON body. Rate-limit and server
// errors come back retryable; client errors do not.
func (c *Client) getJSON(ctx context.Context, rawURL string, header http.Header, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &common.RetryableError{Err: err, Retryable: false}
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return common.ErrRateLimit
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("provider error: %d - %s", resp.StatusCode, string(body))
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(resp.Body)
		return &common.RetryableError{
			Err:       fmt.Errorf("provider error: %d - %s", resp.StatusCode, string(body)),
			Retryable: false,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("failed to decode response: %w", err),
			Retryable: false,
		}
	}
	return nil
}
