// Package view assembles the JSON-safe responses callers consume: the
// main-page dashboard, search results, and category reports. All date
// formatting and null-normalization for serialization happens here, not in
// the aggregators.
package view

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/model"
	"github.com/Veraticus/money-pulse/internal/report"
	"github.com/Veraticus/money-pulse/internal/search"
)

// ReferenceTimeFormat is the timestamp format accepted for --date flags.
const ReferenceTimeFormat = "2006-01-02 15:04:05"

// QuoteProvider supplies currency and stock quotes for the dashboard.
// Implementations return empty lists on failure, never errors.
type QuoteProvider interface {
	CurrencyRates(ctx context.Context, currencies []string) []model.CurrencyRate
	StockPrices(ctx context.Context, stocks []string) []model.StockPrice
}

// MainPageResponse is the dashboard payload.
type MainPageResponse struct {
	Greeting        string                 `json:"greeting"`
	Cards           []model.CardSummary    `json:"cards"`
	TopTransactions []model.TopTransaction `json:"top_transactions"`
	CurrencyRates   []model.CurrencyRate   `json:"currency_rates"`
	StockPrices     []model.StockPrice     `json:"stock_prices"`
}

// MainPage builds the dashboard for the month containing ref: greeting,
// per-card totals and top expenses over successful month-to-date
// transactions, plus the user's currency and stock quotes.
func MainPage(ctx context.Context, txns []model.Transaction, ref time.Time, currencies, stocks []string, provider QuoteProvider) MainPageResponse {
	window := report.MonthToDate(txns, ref)

	resp := MainPageResponse{
		Greeting:        report.Greeting(ref),
		Cards:           report.CardSummaries(window),
		TopTransactions: report.TopTransactions(window, report.DefaultTopN),
		CurrencyRates:   []model.CurrencyRate{},
		StockPrices:     []model.StockPrice{},
	}
	if provider != nil {
		resp.CurrencyRates = provider.CurrencyRates(ctx, currencies)
		resp.StockPrices = provider.StockPrices(ctx, stocks)
	}

	slog.Info("Main page response assembled",
		"cards", len(resp.Cards),
		"top_transactions", len(resp.TopTransactions))
	return resp
}

// SearchResult is one display-formatted search match. Absent MCC serializes
// as null; an absent cashback was already coerced to zero at ingestion.
type SearchResult struct {
	Date          string          `json:"date"`
	PaymentDate   string          `json:"payment_date"`
	Card          string          `json:"card"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	Cashback      decimal.Decimal `json:"cashback"`
	Category      string          `json:"category"`
	MCC           *int            `json:"mcc"`
	Description   string          `json:"description"`
	Currency      string          `json:"currency"`
}

// SearchResults returns the display-formatted transactions whose description
// matches query, in table order.
func SearchResults(txns []model.Transaction, query string) []SearchResult {
	matched := search.Descriptions(txns, query)

	results := make([]SearchResult, 0, len(matched))
	for i := range matched {
		t := &matched[i]
		results = append(results, SearchResult{
			Date:          t.OpDate.Format(model.DisplayTimeFormat),
			PaymentDate:   t.PayDate.Format(model.DisplayDateFormat),
			Card:          t.Card,
			Status:        t.Status,
			Amount:        t.Amount,
			PaymentAmount: t.PayAmount,
			Cashback:      t.Cashback,
			Category:      t.Category,
			MCC:           t.MCC,
			Description:   t.Description,
			Currency:      t.Currency,
		})
	}
	return results
}

// CategoryReport returns the category-spend rows for the three calendar
// months ending at ref.
func CategoryReport(txns []model.Transaction, category string, ref time.Time) []model.CategoryRow {
	return report.SpendingByCategory(txns, category, ref)
}

// ParseReferenceTime interprets a --date value. An empty or malformed value
// falls back to the current time with a warning; a bad reference date is
// never fatal.
func ParseReferenceTime(value string) time.Time {
	if value == "" {
		return time.Now()
	}
	if t, err := time.Parse(ReferenceTimeFormat, value); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		// Date-only references cover the whole day.
		return t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	slog.Warn("Malformed reference date, using current time", "value", value)
	return time.Now()
}
