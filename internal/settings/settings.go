// Package settings loads user preferences and provider credentials.
package settings

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/money-pulse/internal/quotes"
)

// UserSettings lists the currencies and stocks shown on the dashboard.
type UserSettings struct {
	Currencies []string `json:"user_currencies"`
	Stocks     []string `json:"user_stocks"`
}

// Load reads the user settings JSON file. A missing or corrupt file yields
// empty lists and a warning, never an error: the dashboard simply renders
// without quotes.
func Load(path string) UserSettings {
	settings := UserSettings{
		Currencies: []string{},
		Stocks:     []string{},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("User settings unavailable, quotes disabled", "path", path, "error", err)
		return settings
	}

	if err := json.Unmarshal(data, &settings); err != nil {
		slog.Warn("User settings corrupt, quotes disabled", "path", path, "error", err)
		return UserSettings{Currencies: []string{}, Stocks: []string{}}
	}
	if settings.Currencies == nil {
		settings.Currencies = []string{}
	}
	if settings.Stocks == nil {
		settings.Stocks = []string{}
	}

	slog.Info("User settings loaded",
		"path", path,
		"currencies", len(settings.Currencies),
		"stocks", len(settings.Stocks))
	return settings
}

// LoadQuotesConfig assembles the quote provider configuration. Precedence:
// 1. Viper configuration (config file or PULSE_ env vars)
// 2. Direct environment variables, with .env support
// 3. Built-in endpoint defaults
func LoadQuotesConfig() quotes.Config {
	// Missing .env is the normal case; keys may come from the real env.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg := quotes.Config{
		CurrencyURL: viper.GetString("quotes.currency_url"),
		StockURL:    viper.GetString("quotes.stock_url"),
		CurrencyKey: viper.GetString("quotes.currency_api_key"),
		StockKey:    viper.GetString("quotes.stock_api_key"),
		Base:        viper.GetString("quotes.base_currency"),
	}

	if cfg.CurrencyKey == "" {
		cfg.CurrencyKey = os.Getenv("EXCHANGE_RATE_API_KEY")
	}
	if cfg.StockKey == "" {
		cfg.StockKey = os.Getenv("FINNHUB_API_KEY")
	}

	return cfg
}
