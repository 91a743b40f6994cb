package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves an account within an organization.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its human code within an organization.
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)


	// ListAccounts retrieves a paginated list of accounts using token pagination.
	ListAccounts(ctx context.Context, organizationID string, limit int, nextToken *string, includeInactive bool) ([]domain.Account, *string, error)

	// ListChildAccounts retrieves the direct children of an account.
	ListChildAccounts(ctx context.Context, organizationID, parentAccountID string) ([]domain.Account, error)

	// HasPostings reports whether any general-ledger row references the account.
	HasPostings(ctx context.Context, accountID string) (bool, error)
}

// AccountWriter defines write operations for account metadata. Balance columns are
// written exclusively through the journal posting path.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountLocker defines the in-transaction operations the posting path needs.
type AccountLocker interface {
	// FindAccountsByIDsForUpdate locks the account rows and returns their current
	// state. Must be called within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceDeltas applies per-account balance changes inside a transaction.
	ApplyBalanceDeltas(ctx context.Context, tx pgx.Tx, deltas map[string]accounting.BalanceDelta, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
