package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/money-pulse/internal/cli"
	"github.com/Veraticus/money-pulse/internal/common"
	"github.com/Veraticus/money-pulse/internal/ingest"
	"github.com/Veraticus/money-pulse/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from CSV or OFX/QFX exports",
		Long: `Import bank-card transaction exports into the local database.

CSV exports use the bank's semicolon-delimited format; OFX and QFX
statements are detected by extension. Re-importing a file is safe:
rows already present are skipped by content hash.

Examples:
  # Import a CSV export
  pulse import ~/Downloads/operations.csv

  # Import all statements in a directory
  pulse import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		allFiles = append(allFiles, matches...)
	}

	if len(allFiles) == 0 {
		return common.NewUserError("no files to import", nil)
	}

	bar := progressbar.NewOptions(len(allFiles),
		progressbar.OptionSetDescription("Importing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var parsed []model.Transaction
	for _, file := range allFiles {
		txns, err := parseExport(file)
		if err != nil {
			slog.Warn("Skipping file", "file", file, "error", err)
			_ = bar.Add(1)
			continue
		}
		parsed = append(parsed, txns...)
		_ = bar.Add(1)
	}

	if len(parsed) == 0 {
		return common.NewUserError("no transactions found in the given files", common.ErrNoTransactions)
	}

	if dryRun {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Dry run: %d transactions parsed from %d files, nothing saved", len(parsed), len(allFiles))))
		return nil
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.SaveTransactions(ctx, parsed)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d new transactions (%d duplicates skipped)",
		inserted, len(parsed)-inserted)))
	return nil
}

// parseExport picks the reader by file extension.
func parseExport(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.NewCSVReader().Parse(f)
	case ".ofx", ".qfx":
		return ingest.NewOFXReader().Parse(f)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFile, path)
	}
}
