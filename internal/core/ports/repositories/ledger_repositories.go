package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the append-only general ledger.
// Rows are returned in the canonical (EntryDate, EntryNumber, LineNo) order; that
// ordering defines "running balance as of time T" and must be stable so audits
// are reproducible.
type LedgerReader interface {
	// EntriesForAccount retrieves a restartable page of ledger rows for an
	// account, optionally bounded by [from, to] on entry date.
	EntriesForAccount(ctx context.Context, organizationID, accountID string, from, to *time.Time, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// BalanceAsOf returns the running balance of the latest row at or before
	// asOf, or zero when the account has no rows in range.
	BalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time) (decimal.Decimal, error)

	// EntriesForJournalEntry retrieves the ledger rows a journal entry produced.
	EntriesForJournalEntry(ctx context.Context, entryID string) ([]domain.LedgerEntry, error)

	// UnreconciledEntries retrieves the rows for an account dated at or before
	// asOf that are not attached to a COMPLETED reconciliation. These form the
	// book-side candidate set for matching.
	UnreconciledEntries(ctx context.Context, organizationID, accountID string, asOf time.Time) ([]domain.LedgerEntry, error)
}
