package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bank_recon_engine/internal/models"
	"github.com/SscSPs/bank_recon_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reconciliationColumns = `reconciliation_id, organization_id, account_id, period_start, period_end,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) portsrepo.ReconciliationRepositoryFacade {
	return &PgxReconciliationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func scanReconciliation(row pgx.CollectableRow) (models.Reconciliation, error) {
	var m models.Reconciliation
	err := row.Scan(
		&m.ReconciliationID,
		&m.OrganizationID,
		&m.AccountID,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveReconciliation inserts a new reconciliation. The (account, period) unique key maps to ErrDuplicate.
func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, reconciliation domain.Reconciliation) error {
	m := mapping.ToModelReconciliation(reconciliation)
	query := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID,
		m.OrganizationID,
		m.AccountID,
		m.PeriodStart,
		m.PeriodEnd,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: reconciliation for account %s and period %s..%s", apperrors.ErrDuplicate,
				m.AccountID, m.PeriodStart.Format(domain.DateLayout), m.PeriodEnd.Format(domain.DateLayout))
		}
		return apperrors.NewAppError(500, "failed to save reconciliation", err)
	}
	return nil
}

// FindReconciliation retrieves the reconciliation for an exact account and period.
func (r *PgxReconciliationRepository) FindReconciliation(ctx context.Context, organizationID, accountID string, periodStart, periodEnd time.Time) (*domain.Reconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE organization_id = $1 AND account_id = $2 AND period_start = $3 AND period_end = $4;
	`
	rows, _ := r.Pool.Query(ctx, query, organizationID, accountID, periodStart, periodEnd)
	return r.collectOne(rows, "reconciliation for account "+accountID)
}

// FindReconciliationByID retrieves a reconciliation of an organization by its ID.
func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, organizationID, reconciliationID string) (*domain.Reconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE reconciliation_id = $1 AND organization_id = $2;
	`
	rows, _ := r.Pool.Query(ctx, query, reconciliationID, organizationID)
	return r.collectOne(rows, "reconciliation "+reconciliationID)
}

func (r *PgxReconciliationRepository) collectOne(rows pgx.Rows, what string) (*domain.Reconciliation, error) {
	m, err := pgx.CollectExactlyOneRow(rows, scanReconciliation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
		}
		return nil, apperrors.NewAppError(500, "failed to find "+what, err)
	}
	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

// FindMatchesByReconciliationID retrieves all matches recorded for a reconciliation.
func (r *PgxReconciliationRepository) FindMatchesByReconciliationID(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error) {
	query := `
		SELECT match_id, reconciliation_id, statement_line_id, account_transaction_id, match_amount, created_at
		FROM bank_reconciliation_matches
		WHERE reconciliation_id = $1
		ORDER BY created_at, match_id;
	`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query matches for reconciliation "+reconciliationID, err)
	}
	matches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ReconciliationMatch, error) {
		var m models.ReconciliationMatch
		err := row.Scan(&m.MatchID, &m.ReconciliationID, &m.StatementLineID, &m.AccountTransactionID, &m.MatchAmount, &m.CreatedAt)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan matches for reconciliation "+reconciliationID, err)
	}
	return mapping.ToDomainReconciliationMatchSlice(matches), nil
}

// InsertMatches inserts one batch of matches; pairs already recorded are skipped.
func (r *PgxReconciliationRepository) InsertMatches(ctx context.Context, matches []domain.ReconciliationMatch) (int, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	query := `
		INSERT INTO bank_reconciliation_matches (match_id, reconciliation_id, statement_line_id,
			account_transaction_id, match_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (reconciliation_id, statement_line_id) DO NOTHING;
	`
	batch := &pgx.Batch{}
	for _, match := range matches {
		m := mapping.ToModelReconciliationMatch(match)
		batch.Queue(query, m.MatchID, m.ReconciliationID, m.StatementLineID, m.AccountTransactionID, m.MatchAmount, m.CreatedAt)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	br := tx.SendBatch(ctx, batch)
	inserted := 0
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, execErr := br.Exec()
		if execErr != nil {
			if batchErr == nil {
				batchErr = execErr
			}
			continue
		}
		inserted += int(ct.RowsAffected())
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = err
	}
	if batchErr != nil {
		if isUniqueViolation(batchErr) {
			return 0, fmt.Errorf("%w: match batch: %w", apperrors.ErrDuplicate, batchErr)
		}
		return 0, apperrors.NewAppError(500, "failed to insert reconciliation matches", batchErr)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}
