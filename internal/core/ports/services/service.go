package services

// ServiceContainer holds instances of all the application services. It is the
// entry point the handlers use to reach the ledger core.
type ServiceContainer struct {
	Organization   OrganizationSvcFacade
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Ledger         LedgerSvcFacade
	TrialBalance   TrialBalanceSvcFacade
	Reconciliation ReconciliationSvcFacade
}
