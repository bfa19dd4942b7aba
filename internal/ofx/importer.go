// Package ofx converts downloaded OFX/QFX statement files into finished
// transaction records. Unlike the text extractors, statement files carry
// structured amounts and dates, so import only cleans descriptions, maps
// payment rails, and runs the shared categorizer.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/ewisehart/tally/internal/categorize"
	"github.com/ewisehart/tally/internal/model"
)

var (
	// Several banks emit mixed-case SEVERITY values; the OFX schema wants
	// them upper case.
	severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

	// SGML-style files sometimes drop the closing bracket on a tag that
	// ends its line.
	unclosedTagRe = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Importer parses OFX/QFX files into transaction records ready to save.
type Importer struct {
	baseCurrency string
}

// NewImporter creates an importer. baseCurrency fills in for statements
// that carry no usable CURDEF.
func NewImporter(baseCurrency string) *Importer {
	return &Importer{baseCurrency: baseCurrency}
}

// preprocess repairs the malformed SGML real bank exports carry before the
// OFX parser sees the file.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)
	content = unclosedTagRe.ReplaceAllString(content, "$1>")
	return content
}

// ParseFile parses one OFX/QFX file and returns finished records stamped
// with batchID. Bank and credit card statements are both read; statements
// that carry no transaction list contribute nothing.
func (im *Importer) ParseFile(ctx context.Context, reader io.Reader, batchID string) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			transactions = append(transactions, im.statementRecords(batchID, statementCurrency(stmt.CurDef), stmt.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			transactions = append(transactions, im.statementRecords(batchID, statementCurrency(stmt.CurDef), stmt.BankTranList)...)
		}
	}

	slog.Info("Parsed OFX file",
		"batch_id", batchID,
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// statementCurrency returns the statement CURDEF as an ISO code, or empty
// when ofxgo reports the missing-currency placeholder.
func statementCurrency(curDef ofxgo.CurrSymbol) string {
	code := curDef.String()
	if code == "XXX" {
		return ""
	}
	return code
}

func (im *Importer) statementRecords(batchID, currency string, list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	records := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		records = append(records, im.convert(batchID, currency, ofxTx))
	}
	return records
}

// convert maps one statement transaction onto a finished record. Statement
// amounts are signed (negative for debits); the sign becomes the direction
// and the magnitude the amount.
func (im *Importer) convert(batchID, currency string, ofxTx ofxgo.Transaction) model.Transaction {
	amountFloat, _ := ofxTx.TrnAmt.Float64()

	direction := model.DirectionUnknown
	switch {
	case amountFloat < 0:
		direction = model.DirectionOut
	case amountFloat > 0:
		direction = model.DirectionIn
	}

	date := model.Unknown
	if !ofxTx.DtPosted.Time.IsZero() {
		date = ofxTx.DtPosted.Time.Format("2006-01-02")
	}

	txn := model.Transaction{
		ID:          model.NewTransactionID(),
		BatchID:     batchID,
		Date:        date,
		Description: merchantDescription(ofxTx),
		Type:        transactionType(fmt.Sprintf("%v", ofxTx.TrnType)),
		Amount:      math.Abs(amountFloat),
		Currency:    currency,
		Direction:   direction,
	}

	if ofxTx.CheckNum != "" {
		txn.Notes = fmt.Sprintf("check #%s", ofxTx.CheckNum)
	}

	txn.Normalize(im.baseCurrency)
	txn.Category = categorize.Categorize(txn.Description, txn.Type)
	txn.Category = categorize.RepairDirection(txn.Category, txn.Direction)

	return txn
}

// transactionType maps an OFX TRNTYPE code onto the payment-rail labels
// the categorizer and reports understand.
func transactionType(code string) string {
	switch code {
	case "CHECK":
		return "Check"
	case "ATM", "CASH":
		return "Cash"
	case "XFER", "PAYMENT", "REPEATPMT":
		return "Transfer"
	case "DIRECTDEP":
		return "Direct Deposit"
	case "DIRECTDEBIT":
		return "ACH debit"
	case "POS", "DEBIT":
		return "Card"
	case "INT":
		return "Interest"
	case "FEE", "SRVCHG":
		return "Fee"
	case "DEP", "CREDIT":
		return "Deposit"
	default:
		return "Other"
	}
}

// descriptionPrefixes are boilerplate lead-ins banks prepend to merchant
// names.
var descriptionPrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
}

// merchantDescription picks the cleanest merchant text a statement
// transaction offers: PAYEE when present, otherwise NAME, with MEMO
// standing in when NAME is a generic processor word.
func merchantDescription(ofxTx ofxgo.Transaction) string {
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		return strings.TrimSpace(string(ofxTx.Payee.Name))
	}

	name := string(ofxTx.Name)
	if ofxTx.Memo != "" && isGenericName(name) {
		name = string(ofxTx.Memo)
	}
	name = strings.TrimSpace(name)

	upper := strings.ToUpper(name)
	for _, prefix := range descriptionPrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = strings.TrimSpace(name[len(prefix):])
			break
		}
	}

	// Strip a leading MM/DD stamp some processors leave on the name.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericName reports whether a NAME field carries no merchant identity.
func isGenericName(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
