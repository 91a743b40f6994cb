package services

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
)

// ContainerOption configures cross-cutting service dependencies.
type ContainerOption func(*containerConfig)

type containerConfig struct {
	reportCache     portssvc.ReportCacheSvc
	matchWindowDays int
}

// WithContainerReportCache plugs a report cache into trial balance generation
// and posting invalidation.
func WithContainerReportCache(cache portssvc.ReportCacheSvc) ContainerOption {
	return func(c *containerConfig) {
		c.reportCache = cache
	}
}

// WithContainerMatchWindowDays overrides the reconciliation auto-match window.
func WithContainerMatchWindowDays(days int) ContainerOption {
	return func(c *containerConfig) {
		c.matchWindowDays = days
	}
}

// NewServiceContainer wires every service against the repository provider.
// Dependency order matters: the organization service authorizes everything
// else, and the account service is the journal engine's posting resolver.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ContainerOption) *portssvc.ServiceContainer {
	cfg := containerConfig{matchWindowDays: DefaultMatchWindowDays}
	for _, option := range options {
		option(&cfg)
	}

	orgSvc := NewOrganizationService(repos.OrganizationRepo)

	accountSvc := NewAccountService(repos.AccountRepo,
		WithAccountAuthorizer(orgSvc))

	journalOptions := []JournalServiceOption{
		WithJournalAuthorizer(orgSvc),
		WithReconciliationReader(repos.ReconciliationRepo),
	}
	if cfg.reportCache != nil {
		journalOptions = append(journalOptions, WithReportCache(cfg.reportCache))
	}
	journalSvc := NewJournalService(repos.JournalRepo, accountSvc, journalOptions...)

	ledgerSvc := NewLedgerService(repos.LedgerRepo, accountSvc,
		WithLedgerAuthorizer(orgSvc))

	trialBalanceOptions := []TrialBalanceServiceOption{
		WithTrialBalanceAuthorizer(orgSvc),
	}
	if cfg.reportCache != nil {
		trialBalanceOptions = append(trialBalanceOptions, WithTrialBalanceCache(cfg.reportCache))
	}
	trialBalanceSvc := NewTrialBalanceService(repos.ReportingRepo, trialBalanceOptions...)

	reconciliationSvc := NewReconciliationService(repos.ReconciliationRepo, repos.LedgerRepo, repos.JournalRepo, accountSvc,
		WithReconciliationAuthorizer(orgSvc),
		WithMatchWindowDays(cfg.matchWindowDays))

	return &portssvc.ServiceContainer{
		Organization:   orgSvc,
		Account:        accountSvc,
		Journal:        journalSvc,
		Ledger:         ledgerSvc,
		TrialBalance:   trialBalanceSvc,
		Reconciliation: reconciliationSvc,
	}
}
