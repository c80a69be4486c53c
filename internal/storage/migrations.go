package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// migrations are applied in order; the schema version lives in PRAGMA
// user_version so partially-migrated databases resume where they left off.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		hash TEXT PRIMARY KEY,
		op_date DATETIME NOT NULL,
		pay_date DATETIME NOT NULL,
		card TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		amount TEXT NOT NULL,
		pay_amount TEXT NOT NULL,
		cashback TEXT NOT NULL DEFAULT '0',
		category TEXT NOT NULL DEFAULT '',
		mcc INTEGER,
		description TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_op_date ON transactions(op_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`,
}

// Migrate brings the database schema up to date.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for i := version; i < len(migrations); i++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i+1, err)
		}

		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i+1, err)
		}

		slog.Info("Applied migration", "version", i+1)
	}

	return nil
}
