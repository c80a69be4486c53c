// Package report implements the aggregation core: category spend over a
// trailing window, per-card summaries, top-expense ranking, and greetings.
// Every function here is a pure single pass over an already-loaded table;
// none of them performs I/O or mutates its input.
package report

import (
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/money-pulse/internal/model"
)

// SpendingMonths is the trailing window for category-spend reports,
// in calendar months. The window is computed with calendar-month
// subtraction (ref.AddDate(0, -SpendingMonths, 0)), not a fixed day
// count, and both endpoints are inclusive.
const SpendingMonths = 3

// SpendingByCategory returns the expense transactions in the given category
// within the trailing three-calendar-month window ending at ref, inclusive
// of both endpoints. Category matching is case-insensitive. A window,
// category, or sign filter that leaves nothing yields an empty slice,
// never an error.
func SpendingByCategory(txns []model.Transaction, category string, ref time.Time) []model.CategoryRow {
	if len(txns) == 0 {
		slog.Info("Category spend requested on empty table", "category", category)
		return []model.CategoryRow{}
	}

	start := ref.AddDate(0, -SpendingMonths, 0)
	wantCategory := strings.ToLower(category)

	rows := []model.CategoryRow{}
	for i := range txns {
		t := &txns[i]
		if t.OpDate.Before(start) || t.OpDate.After(ref) {
			continue
		}
		if strings.ToLower(t.Category) != wantCategory {
			continue
		}
		if !t.IsExpense() {
			continue
		}
		rows = append(rows, model.CategoryRow{
			Date:        t.OpDate.Format(model.DisplayTimeFormat),
			Amount:      t.Amount,
			Category:    t.Category,
			Description: t.Description,
			MCC:         t.MCC,
		})
	}

	if len(rows) == 0 {
		slog.Info("No expenses found for category",
			"category", category,
			"from", start.Format("2006-01-02"),
			"to", ref.Format("2006-01-02"))
	} else {
		slog.Info("Category spend computed",
			"category", category,
			"rows", len(rows))
	}

	return rows
}
