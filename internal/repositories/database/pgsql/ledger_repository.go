package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/SscSPs/bank_recon_engine/internal/apperrors"
	"github.com/SscSPs/bank_recon_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bank_recon_engine/internal/models"
	"github.com/SscSPs/bank_recon_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository reads account_transactions, which the ledger subsystem owns.
type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerReader {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.LedgerReader = (*PgxLedgerRepository)(nil)

// ListTransactionsByAccount retrieves an account's transactions ordered by date, then ID.
func (r *PgxLedgerRepository) ListTransactionsByAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time) ([]domain.LedgerTransaction, error) {
	query := `
		SELECT transaction_id, organization_id, account_id, transaction_date, description,
		       debit_amount, credit_amount, reference_type, reference_id
		FROM account_transactions
		WHERE organization_id = $1 AND account_id = $2`
	args := []interface{}{organizationID, accountID}
	if from != nil {
		args = append(args, *from)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY transaction_date, transaction_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	txns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AccountTransaction, error) {
		var m models.AccountTransaction
		err := row.Scan(
			&m.TransactionID,
			&m.OrganizationID,
			&m.AccountID,
			&m.TransactionDate,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.ReferenceType,
			&m.ReferenceID,
		)
		return m, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transactions for account "+accountID, err)
	}
	return mapping.ToDomainLedgerTransactionSlice(txns), nil
}
