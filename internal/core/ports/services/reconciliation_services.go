package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// ReconcilerSvc defines the automatic matching operation
type ReconcilerSvc interface {
	// AutoReconcile matches statement lines to ledger transactions by exact date and amount
	// for one account and period. Running it again over the same period creates no new matches.
	AutoReconcile(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time, userID string) (*domain.ReconcileResult, error)
}

// ReconciliationReaderSvc defines read operations for reconciliation results
type ReconciliationReaderSvc interface {
	// GetReconciliation retrieves a reconciliation and its persisted matches.
	GetReconciliation(ctx context.Context, organizationID, reconciliationID string) (*domain.ReconciliationDetail, error)

	// ListUnmatchedLines retrieves statement lines in range that are not flagged as matched.
	ListUnmatchedLines(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error)
}

// ReconciliationSvcFacade combines all reconciliation-related service interfaces
type ReconciliationSvcFacade interface {
	ReconcilerSvc
	ReconciliationReaderSvc
}
