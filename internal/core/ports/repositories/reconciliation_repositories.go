package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// ReconciliationReader defines read operations for reconciliation data.
type ReconciliationReader interface {
	// FindReconciliationByID retrieves a reconciliation record.
	FindReconciliationByID(ctx context.Context, reconciliationID string) (*domain.BankReconciliation, error)

	// FindActiveByAccount retrieves the account's non-COMPLETED reconciliation,
	// or apperrors.ErrNotFound when there is none.
	FindActiveByAccount(ctx context.Context, organizationID, accountID string) (*domain.BankReconciliation, error)

	// ListBankTransactions retrieves the statement lines of a reconciliation in
	// (date, id) order.
	ListBankTransactions(ctx context.Context, reconciliationID string) ([]domain.BankTransaction, error)

	// ListMatches retrieves the confirmed matches of a reconciliation.
	ListMatches(ctx context.Context, reconciliationID string) ([]domain.ReconciliationMatch, error)

	// IsJournalEntryReferenced reports whether any IN_PROGRESS reconciliation
	// holds a match against a ledger row of the given journal entry.
	IsJournalEntryReferenced(ctx context.Context, entryID string) (bool, error)
}

// ReconciliationWriter defines write operations for reconciliation data. The
// matcher never mutates account balances or ledger rows; it only writes
// reconciliation records and match links.
type ReconciliationWriter interface {
	// SaveReconciliation persists a new reconciliation with its imported bank
	// transactions in one transaction.
	SaveReconciliation(ctx context.Context, recon domain.BankReconciliation, bankTxns []domain.BankTransaction) error

	// UpdateReconciliation persists summary figures and status.
	UpdateReconciliation(ctx context.Context, recon domain.BankReconciliation) error

	// ApplyMatch records a match and flips the bank transaction to MATCHED.
	ApplyMatch(ctx context.Context, match domain.ReconciliationMatch) error

	// RemoveMatch deletes a match and returns the bank transaction to UNMATCHED.
	RemoveMatch(ctx context.Context, reconciliationID, bankTransactionID string) error
}

// ReconciliationRepositoryFacade combines all reconciliation repository interfaces.
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
}
