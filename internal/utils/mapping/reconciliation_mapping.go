package mapping

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/SscSPs/bank_recon_engine/internal/models"
)

// ToModelReconciliation converts a domain Reconciliation to a model Reconciliation
func ToModelReconciliation(d domain.Reconciliation) models.Reconciliation {
	return models.Reconciliation{
		ReconciliationID: d.ReconciliationID,
		OrganizationID:   d.OrganizationID,
		AccountID:        d.AccountID,
		PeriodStart:      d.PeriodStart,
		PeriodEnd:        d.PeriodEnd,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model Reconciliation to a domain Reconciliation
func ToDomainReconciliation(m models.Reconciliation) domain.Reconciliation {
	return domain.Reconciliation{
		ReconciliationID: m.ReconciliationID,
		OrganizationID:   m.OrganizationID,
		AccountID:        m.AccountID,
		PeriodStart:      domain.DateOnly(m.PeriodStart),
		PeriodEnd:        domain.DateOnly(m.PeriodEnd),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelReconciliationMatch converts a domain ReconciliationMatch to a model ReconciliationMatch
func ToModelReconciliationMatch(d domain.ReconciliationMatch) models.ReconciliationMatch {
	return models.ReconciliationMatch{
		MatchID:              d.MatchID,
		ReconciliationID:     d.ReconciliationID,
		StatementLineID:      d.StatementLineID,
		AccountTransactionID: d.AccountTransactionID,
		MatchAmount:          d.MatchAmount,
		CreatedAt:            d.CreatedAt,
	}
}

// ToDomainReconciliationMatchSlice converts a slice of model ReconciliationMatches
func ToDomainReconciliationMatchSlice(ms []models.ReconciliationMatch) []domain.ReconciliationMatch {
	out := make([]domain.ReconciliationMatch, len(ms))
	for i, m := range ms {
		out[i] = domain.ReconciliationMatch{
			MatchID:              m.MatchID,
			ReconciliationID:     m.ReconciliationID,
			StatementLineID:      m.StatementLineID,
			AccountTransactionID: m.AccountTransactionID,
			MatchAmount:          m.MatchAmount,
			CreatedAt:            m.CreatedAt,
		}
	}
	return out
}
