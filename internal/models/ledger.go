package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTransaction is a row of account_transactions, owned by the ledger subsystem.
type AccountTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	OrganizationID  string          `db:"organization_id"`
	AccountID       string          `db:"account_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	ReferenceType   string          `db:"reference_type"`
	ReferenceID     string          `db:"reference_id"`
}
