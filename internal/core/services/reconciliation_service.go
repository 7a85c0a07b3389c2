package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/utils/accounting"
)

const DefaultMatchBatchSize = 500

// reconciliationService pairs statement lines with ledger transactions.
type reconciliationService struct {
	BaseService
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	statementRepo      portsrepo.StatementRepositoryFacade
	ledgerRepo         portsrepo.LedgerReader
	batchSize          int
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithMatchBatchSize sets how many matches are written per insert call.
func WithMatchBatchSize(size int) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithReconciliationClock replaces the clock used for audit and reconciled_at timestamps.
func WithReconciliationClock(now func() time.Time) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.now = now
	}
}

// NewReconciliationService creates a new reconciliation service with the provided options
func NewReconciliationService(
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade,
	statementRepo portsrepo.StatementRepositoryFacade,
	ledgerRepo portsrepo.LedgerReader,
	options ...ReconciliationServiceOption,
) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		statementRepo:      statementRepo,
		ledgerRepo:         ledgerRepo,
		batchSize:          DefaultMatchBatchSize,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// matchKey identifies a movement by calendar date and signed amount rounded to cents.
func matchKey(date time.Time, amount decimal.Decimal) string {
	return date.Format(domain.DateLayout) + "|" + accounting.MatchKeyAmount(amount)
}

// AutoReconcile matches the account's statement lines to its ledger transactions over
// [periodStart, periodEnd] by exact (date, signed amount) key.
func (s *reconciliationService) AutoReconcile(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time, userID string) (*domain.ReconcileResult, error) {
	if organizationID == "" || accountID == "" {
		return nil, fmt.Errorf("%w: organization and account are required", apperrors.ErrValidation)
	}
	start, end := domain.DateOnly(periodStart), domain.DateOnly(periodEnd)
	if start.After(end) {
		return nil, apperrors.ErrInvalidRange
	}

	logger := s.GetLogger(ctx).With(
		slog.String("account_id", accountID),
		slog.String("period_start", start.Format(domain.DateLayout)),
		slog.String("period_end", end.Format(domain.DateLayout)),
	)

	reconciliation, err := s.getOrCreateReconciliation(ctx, organizationID, accountID, start, end, userID)
	if err != nil {
		return nil, err
	}

	statements, err := s.statementRepo.FindStatementsOverlapping(ctx, organizationID, accountID, start, end)
	if err != nil {
		logger.Error("Failed to find statements for period", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to find statements: %w", apperrors.ErrPersistence, err)
	}
	if len(statements) == 0 {
		return nil, apperrors.ErrNoStatementData
	}
	statementIDs := make([]string, len(statements))
	for i, st := range statements {
		statementIDs[i] = st.StatementID
	}

	lines, err := s.statementRepo.FindLinesInRange(ctx, statementIDs, start, end)
	if err != nil {
		logger.Error("Failed to load statement lines", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to load statement lines: %w", apperrors.ErrPersistence, err)
	}

	txns, err := s.ledgerRepo.ListTransactionsByAccount(ctx, organizationID, accountID, &start, &end)
	if err != nil {
		logger.Error("Failed to load ledger transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: failed to load ledger transactions: %w", apperrors.ErrPersistence, err)
	}

	matches, matchedLines, colliding := pairLines(reconciliation.ReconciliationID, lines, txns, s.Now())

	result := &domain.ReconcileResult{
		ReconciliationID:   reconciliation.ReconciliationID,
		CandidateMatches:   len(matches),
		StatementLines:     len(lines),
		LedgerTransactions: len(txns),
		CollidingLines:     colliding,
	}
	if colliding > 0 {
		logger.Warn("Statement lines share a date and amount, only the first is matchable",
			slog.Int("colliding_lines", colliding))
	}

	for idx, batch := range chunk(matches, s.batchSize) {
		n, err := s.reconciliationRepo.InsertMatches(ctx, batch)
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Debug("Match batch already recorded", slog.Int("batch", idx))
			continue
		}
		if err != nil {
			logger.Error("Failed to insert matches", slog.Int("batch", idx), slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: failed to insert match batch %d: %w", apperrors.ErrPersistence, idx, err)
		}
		result.NewMatches += n
	}

	toFlag := make([]string, 0, len(matchedLines))
	for _, line := range matchedLines {
		if !line.Matched {
			toFlag = append(toFlag, line.LineID)
		}
	}
	reconciledAt := s.Now()
	for _, ids := range chunk(toFlag, s.batchSize) {
		if err := s.statementRepo.MarkLinesMatched(ctx, ids, reconciledAt); err != nil {
			logger.Warn("Failed to flag matched statement lines",
				slog.Int("line_count", len(ids)),
				slog.String("error", err.Error()))
			result.FlagUpdateFailed = true
			break
		}
	}

	logger.Info("Auto reconciliation completed",
		slog.String("reconciliation_id", result.ReconciliationID),
		slog.Int("new_matches", result.NewMatches),
		slog.Int("candidate_matches", result.CandidateMatches),
		slog.Int("statement_lines", result.StatementLines),
		slog.Int("ledger_transactions", result.LedgerTransactions))
	return result, nil
}

// pairLines indexes lines by key, keeping the first line on a collision, then walks the
// transactions in order and consumes at most one line per key.
func pairLines(reconciliationID string, lines []domain.StatementLine, txns []domain.LedgerTransaction, now time.Time) ([]domain.ReconciliationMatch, []domain.StatementLine, int) {
	index := make(map[string]domain.StatementLine, len(lines))
	colliding := 0
	for _, line := range lines {
		key := matchKey(line.LineDate, line.SignedAmount())
		if _, exists := index[key]; exists {
			colliding++
			continue
		}
		index[key] = line
	}

	var matches []domain.ReconciliationMatch
	var matchedLines []domain.StatementLine
	for _, txn := range txns {
		amount := txn.SignedAmount()
		key := matchKey(txn.TransactionDate, amount)
		line, ok := index[key]
		if !ok {
			continue
		}
		delete(index, key)
		matches = append(matches, domain.ReconciliationMatch{
			MatchID:              uuid.NewString(),
			ReconciliationID:     reconciliationID,
			StatementLineID:      line.LineID,
			AccountTransactionID: txn.TransactionID,
			MatchAmount:          amount,
			CreatedAt:            now,
		})
		matchedLines = append(matchedLines, line)
	}
	return matches, matchedLines, colliding
}

func (s *reconciliationService) getOrCreateReconciliation(ctx context.Context, organizationID, accountID string, start, end time.Time, userID string) (*domain.Reconciliation, error) {
	existing, err := s.reconciliationRepo.FindReconciliation(ctx, organizationID, accountID, start, end)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up reconciliation", slog.String("account_id", accountID))
		return nil, fmt.Errorf("%w: failed to look up reconciliation: %w", apperrors.ErrPersistence, err)
	}

	now := s.Now()
	reconciliation := domain.Reconciliation{
		ReconciliationID: uuid.NewString(),
		OrganizationID:   organizationID,
		AccountID:        accountID,
		PeriodStart:      start,
		PeriodEnd:        end,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	err = s.reconciliationRepo.SaveReconciliation(ctx, reconciliation)
	if errors.Is(err, apperrors.ErrDuplicate) {
		// lost a concurrent create, use the winner
		return s.reconciliationRepo.FindReconciliation(ctx, organizationID, accountID, start, end)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to create reconciliation", slog.String("account_id", accountID))
		return nil, fmt.Errorf("%w: failed to create reconciliation: %w", apperrors.ErrPersistence, err)
	}
	s.LogDebug(ctx, "Reconciliation created", slog.String("reconciliation_id", reconciliation.ReconciliationID))
	return &reconciliation, nil
}

// GetReconciliation retrieves a reconciliation with its matches.
func (s *reconciliationService) GetReconciliation(ctx context.Context, organizationID, reconciliationID string) (*domain.ReconciliationDetail, error) {
	reconciliation, err := s.reconciliationRepo.FindReconciliationByID(ctx, organizationID, reconciliationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reconciliation", slog.String("reconciliation_id", reconciliationID))
		}
		return nil, err
	}

	matches, err := s.reconciliationRepo.FindMatchesByReconciliationID(ctx, reconciliationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load matches", slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to retrieve matches: %w", err)
	}
	return &domain.ReconciliationDetail{Reconciliation: *reconciliation, Matches: matches}, nil
}

// ListUnmatchedLines retrieves the account's statement lines in range that no run has flagged.
func (s *reconciliationService) ListUnmatchedLines(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error) {
	start, end = domain.DateOnly(start), domain.DateOnly(end)
	if start.After(end) {
		return nil, apperrors.ErrInvalidRange
	}
	lines, err := s.statementRepo.FindUnmatchedLines(ctx, organizationID, accountID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unmatched lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve unmatched lines: %w", err)
	}
	return lines, nil
}
