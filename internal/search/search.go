// Package search filters the transaction table by description substring.
package search

import (
	"log/slog"
	"strings"

	"github.com/Veraticus/money-pulse/internal/model"
)

// Descriptions returns the transactions whose description contains query,
// case-insensitively, preserving table order. An empty query or an empty
// table yields an empty result; neither is an error.
func Descriptions(txns []model.Transaction, query string) []model.Transaction {
	if len(txns) == 0 {
		slog.Info("Search requested on empty table")
		return []model.Transaction{}
	}
	if query == "" {
		slog.Info("Search requested with empty query")
		return []model.Transaction{}
	}

	needle := strings.ToLower(query)

	matched := []model.Transaction{}
	for _, t := range txns {
		if strings.Contains(strings.ToLower(t.Description), needle) {
			matched = append(matched, t)
		}
	}

	slog.Info("Search finished", "query", query, "matches", len(matched))
	return matched
}
