package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// LedgerReader defines read access to ledger transactions owned by the ledger subsystem.
type LedgerReader interface {
	// ListTransactionsByAccount retrieves an account's transactions ordered by date ascending.
	// Nil bounds are open; non-nil bounds are inclusive.
	ListTransactionsByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerTransaction, error)
}
