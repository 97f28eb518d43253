// Package ofx imports bank and credit card statements in OFX/QFX format.
package ofx

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/Veraticus/budget/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Categories assigned from OFX transaction types.
const (
	CategoryInterest      = "Interest"
	CategoryBankFees      = "Bank Fees"
	CategoryCash          = "Cash & ATM"
	CategoryUncategorized = "Uncategorized"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is the result of parsing one OFX file.
type Statement struct {
	Transactions []model.Transaction
	Accounts     []string
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix opening tags missing their closing bracket in SGML-style files
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file into ledger transactions. Credits become
// income and debits become expenses.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	accounts := make(map[string]bool)
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if s, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			accounts[string(s.BankAcctFrom.AcctID)] = true
			stmt.Transactions = append(stmt.Transactions, p.convertList(s.BankTranList)...)
		}
	}

	for _, msg := range resp.CreditCard {
		if s, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			accounts[string(s.CCAcctFrom.AcctID)] = true
			stmt.Transactions = append(stmt.Transactions, p.convertList(s.BankTranList)...)
		}
	}

	for acct := range accounts {
		if acct != "" {
			stmt.Accounts = append(stmt.Accounts, acct)
		}
	}
	sort.Strings(stmt.Accounts)

	slog.Info("Parsed OFX file",
		"total_transactions", len(stmt.Transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList) []model.Transaction {
	if list == nil {
		return nil
	}

	txns := make([]model.Transaction, 0, len(list.Transactions))
	for _, ofxTx := range list.Transactions {
		txn, err := p.convertTransaction(ofxTx)
		if err != nil {
			slog.Warn("Skipping OFX transaction", "fitid", string(ofxTx.FiTID), "error", err)
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// convertTransaction converts an OFX transaction to a ledger transaction.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	typ := model.TransactionTypeIncome
	if amount.IsNegative() {
		typ = model.TransactionTypeExpense
	}

	return model.Transaction{
		Description: p.extractMerchantName(ofxTx),
		Amount:      model.SignedAmount(typ, amount),
		Category:    categoryFor(ofxTx.TrnType.String()),
		Type:        typ,
		Date:        ofxTx.DtPosted.Time.UTC(),
	}, nil
}

func categoryFor(trnType string) string {
	switch trnType {
	case "INT", "DIV":
		return CategoryInterest
	case "FEE", "SRVCHG":
		return CategoryBankFees
	case "ATM", "CASH":
		return CategoryCash
	default:
		return CategoryUncategorized
	}
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)

	// MEMO sometimes has better merchant info than a generic NAME
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}

// Fingerprint identifies a transaction by date, amount and description for deduplication.
func Fingerprint(txn model.Transaction) string {
	data := fmt.Sprintf("%s|%s|%s",
		txn.Date.UTC().Format("2006-01-02"),
		txn.Amount.StringFixed(2),
		strings.ToLower(strings.TrimSpace(txn.Description)))
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// FilterNew drops incoming transactions that already appear in existing or
// earlier in incoming.
func FilterNew(existing, incoming []model.Transaction) []model.Transaction {
	seen := make(map[string]bool, len(existing)+len(incoming))
	for _, txn := range existing {
		seen[Fingerprint(txn)] = true
	}

	fresh := make([]model.Transaction, 0, len(incoming))
	for _, txn := range incoming {
		key := Fingerprint(txn)
		if seen[key] {
			continue
		}
		seen[key] = true
		fresh = append(fresh, txn)
	}
	return fresh
}
