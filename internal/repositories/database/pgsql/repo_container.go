package pgsql

import (
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every pgx-backed repository over one pool.
// The journal repository receives the account repository so posting can lock
// and update account balances inside its own transaction.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(pool)
	return portsrepo.RepositoryProvider{
		OrganizationRepo:   newPgxOrganizationRepository(pool),
		AccountRepo:        accountRepo,
		JournalRepo:        newPgxJournalRepository(pool, accountRepo),
		LedgerRepo:         newPgxLedgerRepository(pool),
		ReconciliationRepo: newPgxReconciliationRepository(pool),
		ReportingRepo:      newPgxReportingRepository(pool),
	}
}
