package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// ReportingRepository defines the aggregate reads backing report generation.
type ReportingRepository interface {
	// GetTrialBalanceRows aggregates every account's debit and credit totals from
	// the ledger as of the given date, whatever the account's status. Accounts
	// with no rows still appear with zero totals, so the result always covers the
	// whole chart and its totals carry the ledger-wide balance invariant.
	GetTrialBalanceRows(ctx context.Context, organizationID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
