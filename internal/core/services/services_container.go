package services

import (
	portsrepo "github.com/SscSPs/bank_recon_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_recon_engine/internal/core/ports/services"
	"github.com/SscSPs/bank_recon_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Statement: NewStatementService(
			repos.StatementRepo,
			WithImportBatchSize(cfg.ImportBatchSize),
			WithImportParallelism(cfg.ImportParallelism),
		),
		Ledger: NewLedgerService(repos.LedgerRepo),
		Reconciliation: NewReconciliationService(
			repos.ReconciliationRepo,
			repos.StatementRepo,
			repos.LedgerRepo,
			WithMatchBatchSize(cfg.MatchBatchSize),
		),
		Period: NewPeriodService(repos.PeriodRepo),
	}
}
