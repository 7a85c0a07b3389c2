package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bank_recon_engine/internal/models"
	"github.com/SscSPs/bank_recon_engine/internal/utils/mapping"
	"github.com/SscSPs/bank_recon_engine/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const statementColumns = `statement_id, organization_id, account_id, name, start_date, end_date,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `l.line_id, l.statement_id, l.line_no, l.line_date, l.description, l.debit, l.credit,
	l.balance, l.external_reference, l.hash, l.matched, l.reconciled_at, l.created_at`

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement headers and lines.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

func scanStatement(row pgx.CollectableRow) (models.Statement, error) {
	var m models.Statement
	err := row.Scan(
		&m.StatementID,
		&m.OrganizationID,
		&m.AccountID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanStatementLine(row pgx.CollectableRow) (models.StatementLine, error) {
	var m models.StatementLine
	err := row.Scan(
		&m.LineID,
		&m.StatementID,
		&m.LineNo,
		&m.LineDate,
		&m.Description,
		&m.Debit,
		&m.Credit,
		&m.Balance,
		&m.ExternalReference,
		&m.Hash,
		&m.Matched,
		&m.ReconciledAt,
		&m.CreatedAt,
	)
	return m, err
}

// SaveStatement inserts a new statement header.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	m := mapping.ToModelStatement(statement)
	query := `
		INSERT INTO bank_statements (` + statementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.StatementID,
		m.OrganizationID,
		m.AccountID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: statement %s", apperrors.ErrDuplicate, m.StatementID)
		}
		return apperrors.NewAppError(500, "failed to save statement "+m.StatementID, err)
	}
	return nil
}

// FindStatementByID retrieves a statement of an organization by its ID.
func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, organizationID, statementID string) (*domain.Statement, error) {
	query := `SELECT ` + statementColumns + ` FROM bank_statements WHERE statement_id = $1 AND organization_id = $2;`

	rows, _ := r.Pool.Query(ctx, query, statementID, organizationID)
	m, err := pgx.CollectExactlyOneRow(rows, scanStatement)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: statement %s", apperrors.ErrNotFound, statementID)
		}
		return nil, apperrors.NewAppError(500, "failed to find statement "+statementID, err)
	}
	s := mapping.ToDomainStatement(m)
	return &s, nil
}

// ListStatementsByAccount retrieves an account's statements, newest first, using token-based pagination.
func (r *PgxStatementRepository) ListStatementsByAccount(ctx context.Context, organizationID, accountID string, limit int, nextToken *string) ([]domain.Statement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	args := []interface{}{organizationID, accountID}
	query := `SELECT ` + statementColumns + ` FROM bank_statements WHERE organization_id = $1 AND account_id = $2`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeKeysetToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (created_at, statement_id) < ($3, $4)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at DESC, statement_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query statements for account "+accountID, err)
	}
	modelStatements, err := pgx.CollectRows(rows, scanStatement)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan statements for account "+accountID, err)
	}

	var nextTokenVal *string
	results := modelStatements
	if len(modelStatements) > limit {
		last := modelStatements[limit-1]
		token := pagination.EncodeKeysetToken(last.CreatedAt, last.StatementID)
		nextTokenVal = &token
		results = modelStatements[:limit]
	}

	return mapping.ToDomainStatementSlice(results), nextTokenVal, nil
}

// FindStatementsOverlapping retrieves statements whose span intersects [start, end].
func (r *PgxStatementRepository) FindStatementsOverlapping(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.Statement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM bank_statements
		WHERE organization_id = $1 AND account_id = $2
		  AND start_date <= $4 AND end_date >= $3
		ORDER BY start_date, statement_id;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, accountID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query overlapping statements", err)
	}
	modelStatements, err := pgx.CollectRows(rows, scanStatement)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan overlapping statements", err)
	}
	return mapping.ToDomainStatementSlice(modelStatements), nil
}

// FindLinesByStatementID retrieves all lines of a statement in line-date order.
func (r *PgxStatementRepository) FindLinesByStatementID(ctx context.Context, statementID string) ([]domain.StatementLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM bank_statement_lines l
		WHERE l.statement_id = $1
		ORDER BY l.line_date, l.created_at, l.line_no, l.line_id;
	`
	return r.queryLines(ctx, "failed to query lines of statement "+statementID, query, statementID)
}

// FindLinesInRange retrieves lines of the given statements with line_date inside [start, end].
func (r *PgxStatementRepository) FindLinesInRange(ctx context.Context, statementIDs []string, start, end time.Time) ([]domain.StatementLine, error) {
	if len(statementIDs) == 0 {
		return []domain.StatementLine{}, nil
	}
	query := `
		SELECT ` + lineColumns + `
		FROM bank_statement_lines l
		WHERE l.statement_id = ANY($1) AND l.line_date BETWEEN $2 AND $3
		ORDER BY l.line_date, l.created_at, l.line_no, l.line_id;
	`
	return r.queryLines(ctx, "failed to query statement lines in range", query, statementIDs, start, end)
}

// FindUnmatchedLines retrieves the account's lines inside [start, end] that are not flagged as matched.
func (r *PgxStatementRepository) FindUnmatchedLines(ctx context.Context, organizationID, accountID string, start, end time.Time) ([]domain.StatementLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM bank_statement_lines l
		JOIN bank_statements s ON s.statement_id = l.statement_id
		WHERE s.organization_id = $1 AND s.account_id = $2
		  AND l.line_date BETWEEN $3 AND $4
		  AND NOT l.matched
		ORDER BY l.line_date, l.created_at, l.line_no, l.line_id;
	`
	return r.queryLines(ctx, "failed to query unmatched lines for account "+accountID, query, organizationID, accountID, start, end)
}

func (r *PgxStatementRepository) queryLines(ctx context.Context, failMsg, query string, args ...interface{}) ([]domain.StatementLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, failMsg, err)
	}
	modelLines, err := pgx.CollectRows(rows, scanStatementLine)
	if err != nil {
		return nil, apperrors.NewAppError(500, failMsg, err)
	}
	return mapping.ToDomainStatementLineSlice(modelLines), nil
}

// InsertStatementLines inserts one batch of lines in a single transaction.
// Rows whose hash already exists are skipped; the count of newly stored rows is returned.
func (r *PgxStatementRepository) InsertStatementLines(ctx context.Context, lines []domain.StatementLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO bank_statement_lines (line_id, statement_id, line_no, line_date, description, debit, credit,
			balance, external_reference, hash, matched, reconciled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (hash) DO NOTHING;
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelStatementLine(line)
		batch.Queue(query,
			m.LineID,
			m.StatementID,
			m.LineNo,
			m.LineDate,
			m.Description,
			m.Debit,
			m.Credit,
			m.Balance,
			m.ExternalReference,
			m.Hash,
			m.Matched,
			m.ReconciledAt,
			m.CreatedAt,
		)
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
			return 0, fmt.Errorf("%w: statement line batch: %w", apperrors.ErrDuplicate, batchErr)
		}
		return 0, apperrors.NewAppError(500, "failed to insert statement lines", batchErr)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return inserted, nil
}

// MarkLinesMatched flags lines as matched and stamps reconciled_at.
func (r *PgxStatementRepository) MarkLinesMatched(ctx context.Context, lineIDs []string, reconciledAt time.Time) error {
	if len(lineIDs) == 0 {
		return nil
	}
	query := `
		UPDATE bank_statement_lines
		SET matched = TRUE, reconciled_at = $2
		WHERE line_id = ANY($1);
	`
	if _, err := r.Pool.Exec(ctx, query, lineIDs, reconciledAt); err != nil {
		return apperrors.NewAppError(500, "failed to flag matched statement lines", err)
	}
	return nil
}
