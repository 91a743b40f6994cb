package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This keeps the service container constructor signature manageable.
type RepositoryProvider struct {
	OrganizationRepo   OrganizationRepositoryFacade
	AccountRepo        AccountRepositoryFacade
	JournalRepo        JournalRepositoryWithTx
	LedgerRepo         LedgerReader
	ReconciliationRepo ReconciliationRepositoryFacade
	ReportingRepo      ReportingRepository
}
