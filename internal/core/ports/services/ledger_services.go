package services

import (
	"context"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
)

// LedgerSvc exposes the banking view of ledger transactions
type LedgerSvc interface {
	// GetBankLedger loads an account's transactions inside the optional inclusive bounds and
	// returns them with display amounts, running balance and totals, filtered by filter.
	GetBankLedger(ctx context.Context, organizationID, accountID string, from, to *time.Time, filter string) (*domain.LedgerView, error)
}
