package services

// ServiceContainer holds instances of all the application services.
// It is the entry point used by the HTTP handlers and the CLI.
type ServiceContainer struct {
	Statement      StatementSvcFacade
	Ledger         LedgerSvc
	Reconciliation ReconciliationSvcFacade
	Period         PeriodSvcFacade
}
