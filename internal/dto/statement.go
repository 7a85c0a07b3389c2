package dto

import (
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TemplateParams defines query parameters for downloading the statement template.
type TemplateParams struct {
	Format string `form:"format,default=csv" binding:"oneof=csv xlsx"`
}

// ListStatementsParams defines query parameters for listing statements.
type ListStatementsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// StatementResponse defines the data returned for a statement header.
type StatementResponse struct {
	StatementID string    `json:"statementID"`
	AccountID   string    `json:"accountID"`
	Name        string    `json:"name"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

// ListStatementsResponse wraps a page of statements.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
	NextToken  *string             `json:"nextToken,omitempty"`
}

// StatementLineResponse defines the data returned for a statement line.
type StatementLineResponse struct {
	LineID            string           `json:"lineID"`
	LineDate          string           `json:"lineDate"`
	Description       string           `json:"description"`
	Debit             decimal.Decimal  `json:"debit"`
	Credit            decimal.Decimal  `json:"credit"`
	Balance           *decimal.Decimal `json:"balance,omitempty"`
	ExternalReference *string          `json:"externalReference,omitempty"`
	Matched           bool             `json:"matched"`
	ReconciledAt      *time.Time       `json:"reconciledAt,omitempty"`
}

// StatementLinesResponse is a statement together with its lines.
type StatementLinesResponse struct {
	Statement StatementResponse       `json:"statement"`
	Lines     []StatementLineResponse `json:"lines"`
}

// ImportStatementResponse is returned after a statement upload.
type ImportStatementResponse struct {
	StatementID    string `json:"statementID"`
	TotalLines     int    `json:"totalLines"`
	InsertedLines  int    `json:"insertedLines"`
	DuplicateLines int    `json:"duplicateLines"`
	SkippedRows    int    `json:"skippedRows"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse DTO.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID: s.StatementID,
		AccountID:   s.AccountID,
		Name:        s.Name,
		StartDate:   s.StartDate.Format(domain.DateLayout),
		EndDate:     s.EndDate.Format(domain.DateLayout),
		CreatedAt:   s.CreatedAt,
		CreatedBy:   s.CreatedBy,
	}
}

// ToStatementResponses converts a slice of domain.Statement to []StatementResponse.
func ToStatementResponses(statements []domain.Statement) []StatementResponse {
	res := make([]StatementResponse, len(statements))
	for i := range statements {
		res[i] = ToStatementResponse(&statements[i])
	}
	return res
}

// ToStatementLineResponse converts a domain.StatementLine to StatementLineResponse DTO.
func ToStatementLineResponse(l *domain.StatementLine) StatementLineResponse {
	return StatementLineResponse{
		LineID:            l.LineID,
		LineDate:          l.LineDate.Format(domain.DateLayout),
		Description:       l.Description,
		Debit:             l.Debit,
		Credit:            l.Credit,
		Balance:           l.Balance,
		ExternalReference: l.ExternalReference,
		Matched:           l.Matched,
		ReconciledAt:      l.ReconciledAt,
	}
}

// ToStatementLineResponses converts a slice of domain.StatementLine to []StatementLineResponse.
func ToStatementLineResponses(lines []domain.StatementLine) []StatementLineResponse {
	res := make([]StatementLineResponse, len(lines))
	for i := range lines {
		res[i] = ToStatementLineResponse(&lines[i])
	}
	return res
}

// ToImportStatementResponse converts a domain.ImportResult to ImportStatementResponse DTO.
func ToImportStatementResponse(r *domain.ImportResult) ImportStatementResponse {
	return ImportStatementResponse{
		StatementID:    r.StatementID,
		TotalLines:     r.TotalLines,
		InsertedLines:  r.InsertedLines,
		DuplicateLines: r.DuplicateLines,
		SkippedRows:    r.SkippedRows,
		StartDate:      r.StartDate.Format(domain.DateLayout),
		EndDate:        r.EndDate.Format(domain.DateLayout),
	}
}
