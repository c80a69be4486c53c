// Package ingest loads bank-card exports into the transaction table.
//
// Loading is best-effort coercion: rows whose operation timestamp cannot be
// parsed are dropped with a warning, blank cashback becomes zero, and blank
// MCC becomes nil. The rest of the system may therefore assume every record
// it sees carries a valid timestamp.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/common"
	"github.com/Veraticus/money-pulse/internal/model"
)

// Column headers expected in a CSV export.
const (
	colOpDate      = "operation_date"
	colPayDate     = "payment_date"
	colCard        = "card"
	colStatus      = "status"
	colAmount      = "amount"
	colCurrency    = "currency"
	colPayAmount   = "payment_amount"
	colCashback    = "cashback"
	colCategory    = "category"
	colMCC         = "mcc"
	colDescription = "description"
)

// CSVReader parses semicolon- or comma-delimited bank exports.
type CSVReader struct {
	// Comma is the field delimiter; bank exports commonly use ';'.
	Comma rune
}

// NewCSVReader creates a reader with the common semicolon delimiter.
func NewCSVReader() *CSVReader {
	return &CSVReader{Comma: ';'}
}

// Parse reads an export and returns the coerced transaction table in file
// order. A missing or malformed header is an error; malformed data rows are
// skipped with a warning.
func (r *CSVReader) Parse(reader io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(reader)
	cr.Comma = r.Comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read export header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colOpDate, colStatus, colAmount} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: export is missing column %q", common.ErrUnsupportedFile, required)
		}
	}

	var transactions []model.Transaction
	var dropped int
	line := 1

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping unreadable row", "line", line, "error", err)
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		opDate, err := parseTimestamp(field(colOpDate))
		if err != nil {
			// Rows without a valid operation timestamp cannot be windowed.
			slog.Warn("Dropping row with unparseable operation date",
				"line", line, "value", field(colOpDate))
			dropped++
			continue
		}

		amount, err := parseDecimal(field(colAmount))
		if err != nil {
			slog.Warn("Dropping row with non-numeric amount",
				"line", line, "value", field(colAmount))
			dropped++
			continue
		}

		payAmount, err := parseDecimal(field(colPayAmount))
		if err != nil {
			payAmount = amount
		}

		payDate, err := parseTimestamp(field(colPayDate))
		if err != nil {
			payDate = opDate
		}

		txn := model.Transaction{
			OpDate:      opDate,
			PayDate:     payDate,
			Card:        field(colCard),
			Status:      field(colStatus),
			Amount:      amount,
			PayAmount:   payAmount,
			Cashback:    parseCashback(field(colCashback)),
			Category:    field(colCategory),
			MCC:         parseMCC(field(colMCC)),
			Description: field(colDescription),
			Currency:    field(colCurrency),
		}
		transactions = append(transactions, txn)
	}

	slog.Info("Export parsed", "rows", len(transactions), "dropped", dropped)
	return transactions, nil
}

// parseTimestamp accepts the export's "02.01.2006 15:04:05" timestamps and
// bare "02.01.2006" dates.
func parseTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(model.DisplayTimeFormat, value); err == nil {
		return t, nil
	}
	return time.Parse(model.DisplayDateFormat, value)
}

// parseDecimal handles decimal-comma amounts like "-1 234,56".
func parseDecimal(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	normalized := strings.ReplaceAll(value, " ", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")
	return decimal.NewFromString(normalized)
}

func parseCashback(value string) decimal.Decimal {
	d, err := parseDecimal(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseMCC(value string) *int {
	if value == "" {
		return nil
	}
	code, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &code
}
