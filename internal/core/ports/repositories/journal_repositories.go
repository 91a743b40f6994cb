package repositories

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data.
type JournalEntryReader interface {
	// FindEntryByID retrieves a journal entry without its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves an entry's lines in LineNo order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a paginated list of entries for an organization using
	// token pagination, newest first.
	ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string, includeReversals bool) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entry data.
type JournalEntryWriter interface {
	// SaveDraftEntry persists a new DRAFT entry with its lines.
	SaveDraftEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateDraftEntry replaces a DRAFT entry's header and lines. Fails with
	// apperrors.ErrInvalidOperation if the stored entry is no longer DRAFT.
	UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry) error

	// PostEntry atomically assigns the organization's next entry number, appends
	// the general-ledger rows with running balances, applies account balance
	// deltas, and flips the entry to POSTED. The whole effect commits or none of
	// it does. Fails with apperrors.ErrAlreadyPosted when the stored entry is not
	// DRAFT. Returns the posted entry including its assigned number.
	PostEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// MarkEntryReversed records the two-way reversal link on an already POSTED
	// entry. The original's lines are never touched.
	MarkEntryReversed(ctx context.Context, entryID string, reversalEntryID string, userID string, at time.Time) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction control.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
