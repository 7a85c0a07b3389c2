package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// PeriodReader defines read operations for accounting period locks
type PeriodReader interface {
	// ListPeriods retrieves an organization's locked periods ordered by start date.
	ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error)

	// FindPeriodsCovering retrieves locked periods whose bounds include date.
	FindPeriodsCovering(ctx context.Context, organizationID string, date time.Time) ([]domain.AccountingPeriod, error)
}

// PeriodWriter defines write operations for accounting period locks
type PeriodWriter interface {
	// SavePeriod persists a lock. Returns apperrors.ErrDuplicate for identical bounds.
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error

	// DeletePeriodsByBounds removes locks with exactly these bounds and returns how many were removed.
	DeletePeriodsByBounds(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (int64, error)
}

// PeriodRepositoryFacade combines all period-related repository interfaces
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
