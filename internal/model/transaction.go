// Package model defines the transaction table types shared by every report.
package model

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction statuses as they appear in bank exports.
const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// DisplayTimeFormat is the timestamp format used in bank exports and reports.
const DisplayTimeFormat = "02.01.2006 15:04:05"

// DisplayDateFormat is the date-only format used for payment dates and
// top-transaction entries.
const DisplayDateFormat = "02.01.2006"

// Transaction is a single row of a bank-card export. Amount and PayAmount
// are signed: negative values are expenses, positive values are credits.
type Transaction struct {
	OpDate      time.Time
	PayDate     time.Time
	Card        string // may contain masking characters, e.g. "*7197"
	Status      string
	Amount      decimal.Decimal
	PayAmount   decimal.Decimal
	Cashback    decimal.Decimal // zero when the export column is blank
	Category    string
	MCC         *int // nil when the export column is blank
	Description string
	Currency    string
}

// GenerateHash creates a content hash for duplicate detection on import.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s:%s",
		t.OpDate.Format("2006-01-02 15:04:05"),
		t.Amount.String(),
		t.Card,
		t.Category,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// IsExpense reports whether the transaction took money out of the account.
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// DisplayCard returns the card identifier with masking characters stripped.
func (t *Transaction) DisplayCard() string {
	return strings.ReplaceAll(t.Card, "*", "")
}

// DisplayCategory combines the category label and MCC for report output:
// "Category (code)" when both are present, whichever exists otherwise, and
// "Unknown" when neither does.
func (t *Transaction) DisplayCategory() string {
	switch {
	case t.Category != "" && t.MCC != nil:
		return fmt.Sprintf("%s (%d)", t.Category, *t.MCC)
	case t.Category != "":
		return t.Category
	case t.MCC != nil:
		return strconv.Itoa(*t.MCC)
	default:
		return "Unknown"
	}
}

// DisplayDescription returns the description or a sentinel when absent.
func (t *Transaction) DisplayDescription() string {
	if t.Description == "" {
		return "No description"
	}
	return t.Description
}

// CardSummary is the per-card aggregate for the dashboard. Recomputed on
// every request, never persisted.
type CardSummary struct {
	LastDigits string          `json:"last_digits"`
	TotalSpent decimal.Decimal `json:"total_spent"`
	Cashback   decimal.Decimal `json:"cashback"`
}

// TopTransaction is one entry of the dashboard's largest-expenses ranking.
type TopTransaction struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// CategoryRow is one row of a category-spend report: the subset of the
// original transaction fields the report keeps, in column order.
type CategoryRow struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	MCC         *int            `json:"mcc"`
}

// CurrencyRate is one quote from the currency provider.
type CurrencyRate struct {
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

// StockPrice is one quote from the stock provider.
type StockPrice struct {
	Stock string          `json:"stock"`
	Price decimal.Decimal `json:"price"`
}
