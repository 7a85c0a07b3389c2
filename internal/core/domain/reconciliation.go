package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reconciliation is the unit of work matching statement lines to ledger transactions
// over a period. There is at most one per (account, period start, period end).
type Reconciliation struct {
	ReconciliationID string    `json:"reconciliationID"`
	OrganizationID   string    `json:"organizationID"`
	AccountID        string    `json:"accountID"`
	PeriodStart      time.Time `json:"periodStart"`
	PeriodEnd        time.Time `json:"periodEnd"`
	AuditFields
}

// ReconciliationMatch pairs one statement line with one ledger transaction.
type ReconciliationMatch struct {
	MatchID              string          `json:"matchID"`
	ReconciliationID     string          `json:"reconciliationID"`
	StatementLineID      string          `json:"statementLineID"`
	AccountTransactionID string          `json:"accountTransactionID"`
	MatchAmount          decimal.Decimal `json:"matchAmount"`
	CreatedAt            time.Time       `json:"createdAt"`
}

// ReconcileResult summarizes one AutoReconcile run.
type ReconcileResult struct {
	ReconciliationID   string `json:"reconciliationID"`
	NewMatches         int    `json:"newMatches"`         // created by this run only
	CandidateMatches   int    `json:"candidateMatches"`   // pairs found, including ones already persisted
	StatementLines     int    `json:"statementLines"`     // lines considered
	LedgerTransactions int    `json:"ledgerTransactions"` // transactions considered
	CollidingLines     int    `json:"collidingLines"`     // lines shadowed by an earlier line with the same key
	FlagUpdateFailed   bool   `json:"flagUpdateFailed"`
}

// ReconciliationDetail is a reconciliation together with its persisted matches.
type ReconciliationDetail struct {
	Reconciliation
	Matches []ReconciliationMatch `json:"matches"`
}
