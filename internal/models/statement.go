package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is a row of bank_statements.
type Statement struct {
	StatementID    string    `db:"statement_id"`
	OrganizationID string    `db:"organization_id"`
	AccountID      string    `db:"account_id"`
	Name           string    `db:"name"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	AuditFields
}

// StatementLine is a row of bank_statement_lines.
type StatementLine struct {
	LineID            string           `db:"line_id"`
	StatementID       string           `db:"statement_id"`
	LineNo            int              `db:"line_no"`
	LineDate          time.Time        `db:"line_date"`
	Description       string           `db:"description"`
	Debit             decimal.Decimal  `db:"debit"`
	Credit            decimal.Decimal  `db:"credit"`
	Balance           *decimal.Decimal `db:"balance"`            // Nullable
	ExternalReference *string          `db:"external_reference"` // Nullable
	Hash              string           `db:"hash"`
	Matched           bool             `db:"matched"`
	ReconciledAt      *time.Time       `db:"reconciled_at"` // Nullable
	CreatedAt         time.Time        `db:"created_at"`
}
