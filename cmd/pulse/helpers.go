package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/money-pulse/internal/model"
	"github.com/Veraticus/money-pulse/internal/sink"
	"github.com/Veraticus/money-pulse/internal/storage"
	"github.com/Veraticus/money-pulse/internal/view"
)

// openStorage opens the configured database and applies migrations.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(viper.GetString("storage.path"))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}
	return store, nil
}

// loadTable reads the whole transaction table from storage.
func loadTable(ctx context.Context) ([]model.Transaction, func() error, error) {
	store, err := openStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	txns, err := store.ListTransactions(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txns, store.Close, nil
}

// referenceTime resolves the --date flag. Without a flag it falls back to
// the latest operation date in the table so reports line up with the data,
// and only then to the wall clock.
func referenceTime(flagValue string, txns []model.Transaction) time.Time {
	if flagValue != "" {
		return view.ParseReferenceTime(flagValue)
	}
	var latest time.Time
	for i := range txns {
		if txns[i].OpDate.After(latest) {
			latest = txns[i].OpDate
		}
	}
	if latest.IsZero() {
		return time.Now()
	}
	return latest
}

// reportWriter builds the sink for the configured reports directory.
func reportWriter() *sink.Writer {
	return sink.NewWriter(viper.GetString("reports.dir"))
}

// printJSON renders a payload as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
