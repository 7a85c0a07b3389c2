package mapping

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/SscSPs/bank_recon_engine/internal/models"
)

// ToDomainLedgerTransaction converts a model AccountTransaction to a domain LedgerTransaction
func ToDomainLedgerTransaction(m models.AccountTransaction) domain.LedgerTransaction {
	return domain.LedgerTransaction{
		TransactionID:   m.TransactionID,
		OrganizationID:  m.OrganizationID,
		AccountID:       m.AccountID,
		TransactionDate: domain.DateOnly(m.TransactionDate),
		Description:     m.Description,
		DebitAmount:     m.DebitAmount,
		CreditAmount:    m.CreditAmount,
		ReferenceType:   domain.ReferenceType(m.ReferenceType),
		ReferenceID:     m.ReferenceID,
	}
}

// ToDomainLedgerTransactionSlice converts a slice of model AccountTransactions
func ToDomainLedgerTransactionSlice(ms []models.AccountTransaction) []domain.LedgerTransaction {
	out := make([]domain.LedgerTransaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLedgerTransaction(m)
	}
	return out
}
