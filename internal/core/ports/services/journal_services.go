package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries.
	ListEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams, userID string) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the journal engine's state transitions.
// DRAFT -> (validate) -> POSTED -> (reverse) -> REVERSED; no transition skips
// validation and POSTED entries are immutable except for the reversal link.
type JournalWriterSvc interface {
	// CreateDraftEntry stores a new DRAFT entry. Shape problems (unknown type,
	// malformed lines) are rejected; an unbalanced draft is allowed and reported
	// by ValidateEntry.
	CreateDraftEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateDraftEntry replaces a DRAFT entry's date, description or lines.
	UpdateDraftEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// ValidateEntry checks an entry without mutating any state and returns the
	// full validation result including balance totals.
	ValidateEntry(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntryValidation, error)

	// PostEntry validates and posts a DRAFT entry: assigns the next gapless entry
	// number, appends general-ledger rows and updates account balances as one
	// atomic unit. Fails with apperrors.ErrAlreadyPosted on a non-DRAFT entry.
	PostEntry(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry synthesizes and posts a REVERSING entry with every line's
	// sides swapped and links both entries. The original's lines are untouched.
	ReverseEntry(ctx context.Context, organizationID, entryID string, reason string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
