package mapping

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/SscSPs/bank_recon_engine/internal/models"
)

// ToModelStatement converts a domain Statement to a model Statement
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID:    d.StatementID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		Name:           d.Name,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStatement converts a model Statement to a domain Statement
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:    m.StatementID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		Name:           m.Name,
		StartDate:      domain.DateOnly(m.StartDate),
		EndDate:        domain.DateOnly(m.EndDate),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStatementSlice converts a slice of model Statements to domain Statements
func ToDomainStatementSlice(ms []models.Statement) []domain.Statement {
	out := make([]domain.Statement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainStatement(m)
	}
	return out
}

// ToModelStatementLine converts a domain StatementLine to a model StatementLine
func ToModelStatementLine(d domain.StatementLine) models.StatementLine {
	return models.StatementLine{
		LineID:            d.LineID,
		StatementID:       d.StatementID,
		LineNo:            d.LineNo,
		LineDate:          d.LineDate,
		Description:       d.Description,
		Debit:             d.Debit,
		Credit:            d.Credit,
		Balance:           d.Balance,
		ExternalReference: d.ExternalReference,
		Hash:              d.Hash,
		Matched:           d.Matched,
		ReconciledAt:      d.ReconciledAt,
		CreatedAt:         d.CreatedAt,
	}
}

// ToDomainStatementLine converts a model StatementLine to a domain StatementLine
func ToDomainStatementLine(m models.StatementLine) domain.StatementLine {
	return domain.StatementLine{
		LineID:      m.LineID,
		StatementID: m.StatementID,
		LineNo:      m.LineNo,
		ParsedLine: domain.ParsedLine{
			LineDate:          domain.DateOnly(m.LineDate),
			Description:       m.Description,
			Debit:             m.Debit,
			Credit:            m.Credit,
			Balance:           m.Balance,
			ExternalReference: m.ExternalReference,
		},
		Hash:         m.Hash,
		Matched:      m.Matched,
		ReconciledAt: m.ReconciledAt,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainStatementLineSlice converts a slice of model StatementLines to domain StatementLines
func ToDomainStatementLineSlice(ms []models.StatementLine) []domain.StatementLine {
	out := make([]domain.StatementLine, len(ms))
	for i, m := range ms {
		out[i] = ToDomainStatementLine(m)
	}
	return out
}
