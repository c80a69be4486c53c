package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "RUB", r.URL.Query().Get("base"))
		assert.Equal(t, "USD,EUR,RUB", r.URL.Query().Get("symbols"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rates": {"USD": 0.0125, "EUR": 0.01}}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		CurrencyURL: server.URL,
		CurrencyKey: "test-key",
	})

	rates := client.CurrencyRates(context.Background(), []string{"USD", "EUR", "RUB"})

	require.Len(t, rates, 2)
	assert.Equal(t, "USD", rates[0].Currency)
	// Published rate is the inverse of the provider's base-to-symbol quote.
	assert.True(t, rates[0].Rate.Equal(decimal.RequireFromString("80")), "got %s", rates[0].Rate)
	assert.Equal(t, "EUR", rates[1].Currency)
	assert.True(t, rates[1].Rate.Equal(decimal.RequireFromString("100")))
}

func TestCurrencyRatesMissingSymbolSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"rates": {"USD": 0.0125}}`))
	}))
	defer server.Close()

	client := NewClient(Config{CurrencyURL: server.URL, CurrencyKey: "k"})

	rates := client.CurrencyRates(context.Background(), []string{"USD", "GBP"})

	require.Len(t, rates, 1)
	assert.Equal(t, "USD", rates[0].Currency)
}

func TestCurrencyRatesNoAPIKey(t *testing.T) {
	client := NewClient(Config{CurrencyURL: "http://unused.invalid"})

	rates := client.CurrencyRates(context.Background(), []string{"USD"})

	assert.Empty(t, rates)
	assert.NotNil(t, rates)
}

func TestCurrencyRatesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such endpoint", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(Config{CurrencyURL: server.URL, CurrencyKey: "k"})

	// Provider failure degrades to an empty list, never an error.
	assert.Empty(t, client.CurrencyRates(context.Background(), []string{"USD"}))
}

func TestStockPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("token"))
		switch r.URL.Query().Get("symbol") {
		case "AAPL":
			_, _ = w.Write([]byte(`{"c": 207.149}`))
		case "AMZN":
			_, _ = w.Write([]byte(`{"c": 0}`))
		default:
			http.Error(w, "unknown symbol", http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(Config{StockURL: server.URL, StockKey: "test-key"})

	prices := client.StockPrices(context.Background(), []string{"AAPL", "AMZN", "NOPE"})

	// AMZN has no price and NOPE is unknown; both are skipped.
	require.Len(t, prices, 1)
	assert.Equal(t, "AAPL", prices[0].Stock)
	assert.True(t, prices[0].Price.Equal(decimal.RequireFromString("207.15")), "got %s", prices[0].Price)
}

func TestStockPricesNoAPIKey(t *testing.T) {
	client := NewClient(Config{StockURL: "http://unused.invalid"})

	prices := client.StockPrices(context.Background(), []string{"AAPL"})

	assert.Empty(t, prices)
	assert.NotNil(t, prices)
}

func TestEmptySymbolLists(t *testing.T) {
	client := NewClient(Config{CurrencyKey: "k", StockKey: "k"})

	assert.Empty(t, client.CurrencyRates(context.Background(), nil))
	assert.Empty(t, client.StockPrices(context.Background(), nil))
}
