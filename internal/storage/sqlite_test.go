package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/money-pulse/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testTxn(t *testing.T, date, amount, description string) model.Transaction {
	t.Helper()
	opDate, err := time.Parse("2006-01-02 15:04:05", date)
	require.NoError(t, err)

	mcc := 5411
	return model.Transaction{
		OpDate:      opDate,
		PayDate:     opDate,
		Card:        "*7197",
		Status:      model.StatusOK,
		Amount:      decimal.RequireFromString(amount),
		PayAmount:   decimal.RequireFromString(amount),
		Cashback:    decimal.RequireFromString("1.5"),
		Category:    "Groceries",
		MCC:         &mcc,
		Description: description,
		Currency:    "RUB",
	}
}

func TestSaveAndListTransactions(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txns := []model.Transaction{
		testTxn(t, "2024-07-02 10:00:00", "-200.50", "second"),
		testTxn(t, "2024-07-01 10:00:00", "-100.25", "first"),
	}

	inserted, err := store.SaveTransactions(ctx, txns)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	got, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by operation date.
	assert.Equal(t, "first", got[0].Description)
	assert.Equal(t, "second", got[1].Description)

	// Decimal fields survive the round trip exactly.
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("-100.25")))
	assert.True(t, got[0].Cashback.Equal(decimal.RequireFromString("1.5")))
	require.NotNil(t, got[0].MCC)
	assert.Equal(t, 5411, *got[0].MCC)
	assert.Equal(t, "RUB", got[0].Currency)
}

func TestSaveTransactionsDeduplicates(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txns := []model.Transaction{
		testTxn(t, "2024-07-01 10:00:00", "-100", "groceries"),
	}

	inserted, err := store.SaveTransactions(ctx, txns)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	// Importing the same export twice must not duplicate rows.
	inserted, err = store.SaveTransactions(ctx, txns)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	count, err := store.CountTransactions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveTransactionsNilMCC(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	txn := testTxn(t, "2024-07-01 10:00:00", "-100", "no mcc")
	txn.MCC = nil

	_, err := store.SaveTransactions(ctx, []model.Transaction{txn})
	require.NoError(t, err)

	got, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].MCC)
}

func TestListTransactionsEmpty(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	// Second run must be a no-op, not an error.
	require.NoError(t, store.Migrate(context.Background()))
}
