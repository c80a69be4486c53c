package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/model"
)

// DefaultTopN is the number of entries in the dashboard's largest-expense
// ranking.
const DefaultTopN = 5

// MonthToDate restricts the table to successful transactions between the
// first instant of ref's month and ref, inclusive. This is the dashboard's
// pre-filter: CardSummaries and TopTransactions expect their input already
// filtered and never apply status or date conditions themselves.
func MonthToDate(txns []model.Transaction, ref time.Time) []model.Transaction {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())

	filtered := []model.Transaction{}
	for _, t := range txns {
		if t.Status != model.StatusOK {
			continue
		}
		if t.OpDate.Before(start) || t.OpDate.After(ref) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// CardSummaries groups the (pre-filtered) table by card and totals spend and
// cashback per card. Spend is the sum of absolute values of negative payment
// amounts; credits are excluded. Negative cashback entries are refund
// corrections and contribute their absolute value. Cards appear in order of
// first appearance in the table.
func CardSummaries(txns []model.Transaction) []model.CardSummary {
	type totals struct {
		spent    decimal.Decimal
		cashback decimal.Decimal
	}

	order := []string{}
	byCard := map[string]*totals{}

	for i := range txns {
		t := &txns[i]
		agg, ok := byCard[t.Card]
		if !ok {
			agg = &totals{}
			byCard[t.Card] = agg
			order = append(order, t.Card)
		}
		if t.PayAmount.IsNegative() {
			agg.spent = agg.spent.Add(t.PayAmount.Abs())
		}
		agg.cashback = agg.cashback.Add(t.Cashback.Abs())
	}

	summaries := make([]model.CardSummary, 0, len(order))
	for _, card := range order {
		agg := byCard[card]
		summaries = append(summaries, model.CardSummary{
			LastDigits: strings.ReplaceAll(card, "*", ""),
			TotalSpent: agg.spent.Round(2),
			Cashback:   agg.cashback.Round(2),
		})
	}
	return summaries
}

// TopTransactions ranks the (pre-filtered) table's expenses by absolute
// payment amount, descending, and returns the first n formatted entries.
// Ties keep original table order. n <= 0 falls back to DefaultTopN.
func TopTransactions(txns []model.Transaction, n int) []model.TopTransaction {
	if n <= 0 {
		n = DefaultTopN
	}

	expenses := []model.Transaction{}
	for _, t := range txns {
		if t.PayAmount.IsNegative() {
			expenses = append(expenses, t)
		}
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].PayAmount.Abs().GreaterThan(expenses[j].PayAmount.Abs())
	})

	if len(expenses) > n {
		expenses = expenses[:n]
	}

	top := make([]model.TopTransaction, 0, len(expenses))
	for i := range expenses {
		t := &expenses[i]
		top = append(top, model.TopTransaction{
			Date:        t.OpDate.Format(model.DisplayDateFormat),
			Amount:      t.PayAmount.Abs().Round(2),
			Category:    t.DisplayCategory(),
			Description: t.DisplayDescription(),
		})
	}
	return top
}
