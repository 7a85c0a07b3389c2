package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/utils/accounting"
)

// ledgerService builds the banking view of ledger transactions.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader) portssvc.LedgerSvc {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GetBankLedger loads the account's transactions and folds them into the banking view.
func (s *ledgerService) GetBankLedger(ctx context.Context, organizationID, accountID string, from, to *time.Time, filter string) (*domain.LedgerView, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperrors.ErrInvalidRange
	}

	txns, err := s.ledgerRepo.ListTransactionsByAccount(ctx, organizationID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve ledger transactions: %w", err)
	}

	view := accounting.BuildLedgerView(txns, filter)
	s.LogDebug(ctx, "Bank ledger built",
		slog.String("account_id", accountID),
		slog.Int("transactions", len(txns)),
		slog.Int("rows", len(view.Rows)))
	return &view, nil
}
