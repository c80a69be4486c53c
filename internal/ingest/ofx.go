package ingest

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/money-pulse/internal/model"
)

// OFXReader parses OFX/QFX statement exports into the transaction table.
type OFXReader struct{}

// NewOFXReader creates a new OFX reader.
func NewOFXReader() *OFXReader {
	return &OFXReader{}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML-style tags missing their
// closing bracket.
func (r *OFXReader) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX statement and returns its transactions. OFX carries
// no category, cashback, or MCC data, so those fields stay at their zero
// values; every imported row has status OK since banks only export posted
// transactions.
func (r *OFXReader) Parse(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(r.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			account := string(stmt.BankAcctFrom.AcctID)
			currency := stmt.CurDef.String()
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txn, err := r.convert(ofxTx, account, currency)
				if err != nil {
					slog.Warn("Skipping OFX transaction", "account", account, "error", err)
					continue
				}
				transactions = append(transactions, txn)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			account := string(stmt.CCAcctFrom.AcctID)
			currency := stmt.CurDef.String()
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txn, err := r.convert(ofxTx, account, currency)
				if err != nil {
					slog.Warn("Skipping OFX transaction", "account", account, "error", err)
					continue
				}
				transactions = append(transactions, txn)
			}
		}
	}

	slog.Info("OFX file parsed",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

func (r *OFXReader) convert(ofxTx ofxgo.Transaction, account, currency string) (model.Transaction, error) {
	// OFX signs match ours: debits are negative. Statement amounts carry at
	// most two decimal places.
	raw := ofxTx.TrnAmt.FloatString(2)
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("bad amount %q: %w", raw, err)
	}

	description := string(ofxTx.Name)
	if description == "" {
		description = string(ofxTx.Memo)
	}

	posted := ofxTx.DtPosted.Time
	return model.Transaction{
		OpDate:      posted,
		PayDate:     posted,
		Card:        account,
		Status:      model.StatusOK,
		Amount:      amount,
		PayAmount:   amount,
		Description: strings.TrimSpace(description),
		Currency:    currency,
	}, nil
}
