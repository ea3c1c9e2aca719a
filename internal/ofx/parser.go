// Package ofx turns OFX/QFX bank and credit card statements into transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/moneyflow/internal/common"
	"github.com/Veraticus/moneyflow/internal/model"
)

// IDPrefix marks transaction ids that came from an OFX import.
const IDPrefix = "ofx-"

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// CategoryMapping chooses the category for imported transactions by type.
type CategoryMapping struct {
	Income  string
	Expense string
}

// Validate checks that both categories are set.
func (m CategoryMapping) Validate() error {
	if strings.TrimSpace(m.Income) == "" || strings.TrimSpace(m.Expense) == "" {
		return fmt.Errorf("%w: both an income and an expense category are required", common.ErrValidation)
	}
	return nil
}

// Statement is the result of parsing one OFX file.
type Statement struct {
	Accounts     []string
	Transactions []model.Transaction
	// Skipped counts zero-amount entries, which have no direction.
	Skipped int
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	mapping CategoryMapping
}

// NewParser creates a new OFX parser that files transactions under mapping.
func NewParser(mapping CategoryMapping) *Parser {
	return &Parser{mapping: mapping}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of an opening tag at end of line.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) (*Statement, error) {
	if err := p.mapping.Validate(); err != nil {
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
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if bank, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			p.addStatement(stmt, string(bank.BankAcctFrom.AcctID), bank.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			p.addStatement(stmt, string(cc.CCAcctFrom.AcctID), cc.BankTranList)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(stmt.Transactions),
		"skipped", stmt.Skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

func (p *Parser) addStatement(stmt *Statement, accountID string, list *ofxgo.TransactionList) {
	if accountID != "" && !slices.Contains(stmt.Accounts, accountID) {
		stmt.Accounts = append(stmt.Accounts, accountID)
	}
	if list == nil {
		return
	}

	for _, ofxTx := range list.Transactions {
		txn, ok := p.convertTransaction(ofxTx, accountID)
		if !ok {
			stmt.Skipped++
			slog.Debug("Skipping zero-amount OFX entry", "fitid", ofxTx.FiTID, "account", accountID)
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}
}

// convertTransaction converts an OFX transaction. Credits become income and
// debits become expenses; the amount is stored unsigned.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (model.Transaction, bool) {
	amount, _ := ofxTx.TrnAmt.Float64()
	if amount == 0 {
		return model.Transaction{}, false
	}

	txn := model.Transaction{
		ID:          transactionID(accountID, string(ofxTx.FiTID)),
		Date:        model.DateOf(ofxTx.DtPosted.Time),
		Description: p.extractMerchantName(ofxTx),
		Type:        model.TypeExpense,
		CategoryID:  p.mapping.Expense,
		Amount:      amount,
	}
	if amount > 0 {
		txn.Type = model.TypeIncome
		txn.CategoryID = p.mapping.Income
	} else {
		txn.Amount = -amount
	}

	if txn.Description == "" {
		txn.Description = ofxTx.TrnType.String()
	}
	if ofxTx.CheckNum != "" {
		txn.Description += " (check " + string(ofxTx.CheckNum) + ")"
	}

	return txn, true
}

// transactionID derives a stable id so that re-importing a file finds the
// same transactions again.
func transactionID(accountID, fitID string) string {
	if accountID == "" {
		return IDPrefix + fitID
	}
	return IDPrefix + accountID + "-" + fitID
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func (p *Parser) extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
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

	// Drop a leading "MM/DD " posting date.
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
	return slices.Contains(generic, strings.ToUpper(strings.TrimSpace(name)))
}
