package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the header record created once per imported bank statement file.
type Statement struct {
	StatementID    string    `json:"statementID"`    // Primary Key (UUID)
	OrganizationID string    `json:"organizationID"` // Tenant boundary
	AccountID      string    `json:"accountID"`      // Bank account the file belongs to
	Name           string    `json:"name"`           // Usually the uploaded file name
	StartDate      time.Time `json:"startDate"`      // min(line_date)
	EndDate        time.Time `json:"endDate"`        // max(line_date)
	AuditFields
}

// Overlaps reports whether the statement's date span intersects [start, end].
func (s Statement) Overlaps(start, end time.Time) bool {
	return !s.StartDate.After(end) && !s.EndDate.Before(start)
}

// ParsedLine is one normalized row read from a statement file, before persistence.
type ParsedLine struct {
	LineDate          time.Time        `json:"lineDate"`
	Description       string           `json:"description"`
	Debit             decimal.Decimal  `json:"debit"`
	Credit            decimal.Decimal  `json:"credit"`
	Balance           *decimal.Decimal `json:"balance,omitempty"`
	ExternalReference *string          `json:"externalReference,omitempty"`
}

// StatementLine is a persisted statement row.
type StatementLine struct {
	LineID      string `json:"lineID"`      // Primary Key (UUID)
	StatementID string `json:"statementID"` // FK -> bank_statements
	LineNo      int    `json:"lineNo"`      // Zero-based position in the imported file
	ParsedLine
	Hash         string     `json:"hash"` // Unique across the store
	Matched      bool       `json:"matched"`
	ReconciledAt *time.Time `json:"reconciledAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// SignedAmount is the amount a statement line is keyed by during matching.
// The balance column wins when present; otherwise credit minus debit.
func (l StatementLine) SignedAmount() decimal.Decimal {
	if l.Balance != nil {
		return *l.Balance
	}
	return l.Credit.Sub(l.Debit)
}

// ImportResult summarizes a single statement import.
type ImportResult struct {
	StatementID    string    `json:"statementID"`
	TotalLines     int       `json:"totalLines"`
	InsertedLines  int       `json:"insertedLines"`
	DuplicateLines int       `json:"duplicateLines"`
	SkippedRows    int       `json:"skippedRows"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}
