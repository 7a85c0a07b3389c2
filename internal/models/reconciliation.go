package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation is a row of bank_reconciliations.
type Reconciliation struct {
	ReconciliationID string    `db:"reconciliation_id"`
	OrganizationID   string    `db:"organization_id"`
	AccountID        string    `db:"account_id"`
	PeriodStart      time.Time `db:"period_start"`
	PeriodEnd        time.Time `db:"period_end"`
	AuditFields
}

// ReconciliationMatch is a row of bank_reconciliation_matches.
type ReconciliationMatch struct {
	MatchID              string          `db:"match_id"`
	ReconciliationID     string          `db:"reconciliation_id"`
	StatementLineID      string          `db:"statement_line_id"`
	AccountTransactionID string          `db:"account_transaction_id"`
	MatchAmount          decimal.Decimal `db:"match_amount"`
	CreatedAt            time.Time       `db:"created_at"`
}
