package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferenceType names the business event that produced a ledger transaction.
type ReferenceType string

const (
	RefReceiptPayment  ReferenceType = "receipt_payment"
	RefExpense         ReferenceType = "expense"
	RefPurchasePayment ReferenceType = "purchase_payment"
)

// LedgerTransaction is an internally recorded accounting entry against an account.
// It is owned by the ledger subsystem and read-only here.
type LedgerTransaction struct {
	TransactionID   string          `json:"transactionID"`
	OrganizationID  string          `json:"organizationID"`
	AccountID       string          `json:"accountID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	ReferenceType   ReferenceType   `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
}

// SignedAmount is credit minus debit, the key a transaction is matched by.
func (t LedgerTransaction) SignedAmount() decimal.Decimal {
	return t.CreditAmount.Sub(t.DebitAmount)
}

// LedgerViewRow is a transaction as shown in the banking view.
type LedgerViewRow struct {
	LedgerTransaction
	DisplayDebit   decimal.Decimal `json:"displayDebit"`
	DisplayCredit  decimal.Decimal `json:"displayCredit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerView is the banking view of one account.
// Totals cover the returned rows; ClosingBalance is the balance after the last
// transaction of the unfiltered sequence.
type LedgerView struct {
	Rows           []LedgerViewRow `json:"rows"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}
