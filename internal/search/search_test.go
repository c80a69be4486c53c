package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-pulse/internal/model"
)

func txnWithDescription(desc string) model.Transaction {
	return model.Transaction{
		OpDate:      time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC),
		Status:      model.StatusOK,
		Description: desc,
	}
}

func TestDescriptions(t *testing.T) {
	table := []model.Transaction{
		txnWithDescription("Supermarket Lenta"),
		txnWithDescription("Coffee shop"),
		txnWithDescription("LENTA online order"),
		txnWithDescription(""),
	}

	tests := []struct {
		name      string
		query     string
		wantDescs []string
	}{
		{
			name:      "case-insensitive substring",
			query:     "lenta",
			wantDescs: []string{"Supermarket Lenta", "LENTA online order"},
		},
		{
			name:      "uppercase query",
			query:     "COFFEE",
			wantDescs: []string{"Coffee shop"},
		},
		{
			name:      "no match",
			query:     "pharmacy",
			wantDescs: []string{},
		},
		{
			name:      "empty query yields nothing",
			query:     "",
			wantDescs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Descriptions(table, tt.query)

			require.Len(t, got, len(tt.wantDescs))
			for i, want := range tt.wantDescs {
				assert.Equal(t, want, got[i].Description)
			}
		})
	}
}

func TestDescriptionsEmptyTable(t *testing.T) {
	got := Descriptions(nil, "anything")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDescriptionsPreservesTableOrder(t *testing.T) {
	table := []model.Transaction{
		txnWithDescription("store one"),
		txnWithDescription("store two"),
		txnWithDescription("store three"),
	}

	got := Descriptions(table, "store")

	require.Len(t, got, 3)
	assert.Equal(t, "store one", got[0].Description)
	assert.Equal(t, "store two", got[1].Description)
	assert.Equal(t, "store three", got[2].Description)
}

func TestDescriptionsIsSubsetOfTable(t *testing.T) {
	table := []model.Transaction{
		txnWithDescription("alpha"),
		txnWithDescription("beta"),
	}

	got := Descriptions(table, "alp")

	for _, match := range got {
		assert.Contains(t, table, match)
	}
}
