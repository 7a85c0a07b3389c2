package pgsql

import (
	"context"
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

const periodColumns = `period_id, organization_id, period_start, period_end, status, created_at, created_by`

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.CollectableRow) (models.AccountingPeriod, error) {
	var m models.AccountingPeriod
	err := row.Scan(&m.PeriodID, &m.OrganizationID, &m.PeriodStart, &m.PeriodEnd, &m.Status, &m.CreatedAt, &m.CreatedBy)
	return m, err
}

// SavePeriod inserts a period lock.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	m := mapping.ToModelAccountingPeriod(period)
	query := `INSERT INTO accounting_periods (` + periodColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`

	_, err := r.Pool.Exec(ctx, query, m.PeriodID, m.OrganizationID, m.PeriodStart, m.PeriodEnd, m.Status, m.CreatedAt, m.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: period lock for organization %s", apperrors.ErrDuplicate, m.OrganizationID)
		}
		return apperrors.NewAppError(500, "failed to save accounting period", err)
	}
	return nil
}

// DeletePeriodsByBounds removes locks with exactly these bounds.
func (r *PgxPeriodRepository) DeletePeriodsByBounds(ctx context.Context, organizationID string, periodStart, periodEnd time.Time) (int64, error) {
	query := `DELETE FROM accounting_periods WHERE organization_id = $1 AND period_start = $2 AND period_end = $3;`

	result, err := r.Pool.Exec(ctx, query, organizationID, periodStart, periodEnd)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete accounting period", err)
	}
	return result.RowsAffected(), nil
}

// ListPeriods retrieves an organization's locked periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context, organizationID string) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE organization_id = $1 ORDER BY period_start, period_end;`
	return r.queryPeriods(ctx, query, organizationID)
}

// FindPeriodsCovering retrieves locked periods whose bounds include date.
func (r *PgxPeriodRepository) FindPeriodsCovering(ctx context.Context, organizationID string, date time.Time) ([]domain.AccountingPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE organization_id = $1 AND period_start <= $2 AND period_end >= $2
		ORDER BY period_start;
	`
	return r.queryPeriods(ctx, query, organizationID, domain.DateOnly(date))
}

func (r *PgxPeriodRepository) queryPeriods(ctx context.Context, query string, args ...interface{}) ([]domain.AccountingPeriod, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounting periods", err)
	}
	periods, err := pgx.CollectRows(rows, scanPeriod)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounting periods", err)
	}
	return mapping.ToDomainAccountingPeriodSlice(periods), nil
}
