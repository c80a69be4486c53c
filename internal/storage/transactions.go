package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/model"
)

// Amounts are stored as their decimal string representation so nothing is
// lost to binary floating point on the round trip.

// SaveTransactions inserts transactions, skipping rows whose content hash is
// already present. It returns the number of newly inserted rows.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			hash, op_date, pay_date, card, status, amount, pay_amount,
			cashback, category, mcc, description, currency
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for i := range transactions {
		txn := &transactions[i]

		var mcc any
		if txn.MCC != nil {
			mcc = *txn.MCC
		}

		res, err := stmt.ExecContext(ctx,
			txn.GenerateHash(),
			txn.OpDate.Format(time.RFC3339),
			txn.PayDate.Format(time.RFC3339),
			txn.Card,
			txn.Status,
			txn.Amount.String(),
			txn.PayAmount.String(),
			txn.Cashback.String(),
			txn.Category,
			mcc,
			txn.Description,
			txn.Currency,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert transaction: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, nil
}

// ListTransactions returns the full table ordered by operation date, with
// insertion order breaking ties so report ordering is reproducible.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT op_date, pay_date, card, status, amount, pay_amount,
		       cashback, category, mcc, description, currency
		FROM transactions
		ORDER BY op_date, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// CountTransactions returns the number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func scanTransaction(rows *sql.Rows) (model.Transaction, error) {
	var (
		txn                         model.Transaction
		opDate, payDate             string
		amount, payAmount, cashback string
		mcc                         sql.NullInt64
	)

	if err := rows.Scan(&opDate, &payDate, &txn.Card, &txn.Status,
		&amount, &payAmount, &cashback, &txn.Category, &mcc,
		&txn.Description, &txn.Currency); err != nil {
		return txn, fmt.Errorf("failed to scan transaction: %w", err)
	}

	var err error
	if txn.OpDate, err = time.Parse(time.RFC3339, opDate); err != nil {
		return txn, fmt.Errorf("failed to parse op_date %q: %w", opDate, err)
	}
	if txn.PayDate, err = time.Parse(time.RFC3339, payDate); err != nil {
		return txn, fmt.Errorf("failed to parse pay_date %q: %w", payDate, err)
	}
	if txn.Amount, err = decimal.NewFromString(amount); err != nil {
		return txn, fmt.Errorf("failed to parse amount %q: %w", amount, err)
	}
	if txn.PayAmount, err = decimal.NewFromString(payAmount); err != nil {
		return txn, fmt.Errorf("failed to parse pay_amount %q: %w", payAmount, err)
	}
	if txn.Cashback, err = decimal.NewFromString(cashback); err != nil {
		return txn, fmt.Errorf("failed to parse cashback %q: %w", cashback, err)
	}

	if mcc.Valid {
		code := int(mcc.Int64)
		txn.MCC = &code
	}

	return txn, nil
}
