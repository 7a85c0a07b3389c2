package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliations and their matches
type ReconciliationReader interface {
	// FindReconciliation retrieves the reconciliation for an exact account and period.
	// Returns apperrors.ErrNotFound when none exists.
	FindReconciliation(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.Reconciliation, error)

	// FindReconciliationByID retrieves a reconciliation of an organization by its ID.
	FindReconciliationByID(ctx context.Context, organizationID, reconciliationID string) (*domain.Reconciliation, error)

	// FindMatchesByReconciliationID retrieves all matches recorded for a reconciliation.
	FindMatchesByReconciliationID(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error)
}

// ReconciliationWriter defines write operations for reconciliations and their matches
type ReconciliationWriter interface {
	// SaveReconciliation persists a new reconciliation.
	// Returns apperrors.ErrDuplicate if one already exists for the account and period.
	SaveReconciliation(ctx context.Context, reconciliation domain.Reconciliation) error

	// InsertMatches persists one batch of matches and returns how many were newly stored.
	// A (reconciliation, statement line) pair that already exists is not stored again.
	InsertMatches(ctx context.Context, matches []domain.ReconciliationMatch) (int, error)
}

// ReconciliationRepositoryFacade combines all reconciliation-related repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
