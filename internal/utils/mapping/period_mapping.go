package mapping

import (
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	"github.com/SscSPs/bank_recon_engine/internal/models"
)

// ToModelAccountingPeriod converts a domain AccountingPeriod to a model AccountingPeriod
func ToModelAccountingPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:       d.PeriodID,
		OrganizationID: d.OrganizationID,
		PeriodStart:    d.PeriodStart,
		PeriodEnd:      d.PeriodEnd,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		CreatedBy:      d.CreatedBy,
	}
}

// ToDomainAccountingPeriodSlice converts a slice of model AccountingPeriods
func ToDomainAccountingPeriodSlice(ms []models.AccountingPeriod) []domain.AccountingPeriod {
	out := make([]domain.AccountingPeriod, len(ms))
	for i, m := range ms {
		out[i] = domain.AccountingPeriod{
			PeriodID:       m.PeriodID,
			OrganizationID: m.OrganizationID,
			PeriodStart:    domain.DateOnly(m.PeriodStart),
			PeriodEnd:      domain.DateOnly(m.PeriodEnd),
			Status:         domain.PeriodStatus(m.Status),
			CreatedAt:      m.CreatedAt,
			CreatedBy:      m.CreatedBy,
		}
	}
	return out
}
