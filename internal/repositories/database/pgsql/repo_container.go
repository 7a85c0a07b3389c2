package pgsql

import (
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		StatementRepo:      newPgxStatementRepository(dbPool),
		LedgerRepo:         newPgxLedgerRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		PeriodRepo:         newPgxPeriodRepository(dbPool),
	}
}
