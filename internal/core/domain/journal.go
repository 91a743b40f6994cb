package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntryType classifies why an entry exists.
type JournalEntryType string

const (
	EntryStandard  JournalEntryType = "STANDARD"
	EntryAdjusting JournalEntryType = "ADJUSTING"
	EntryClosing   JournalEntryType = "CLOSING"
	EntryReversing JournalEntryType = "REVERSING"
)

// Valid reports whether t is a known entry type.
func (t JournalEntryType) Valid() bool {
	switch t {
	case EntryStandard, EntryAdjusting, EntryClosing, EntryReversing:
		return true
	}
	return false
}

// JournalEntryStatus indicates the state of a journal entry.
// Transitions: DRAFT -> POSTED -> REVERSED. No transition skips validation, and a
// POSTED entry is immutable except for its reversal link.
type JournalEntryStatus string

const (
	EntryDraft    JournalEntryStatus = "DRAFT"
	EntryPosted   JournalEntryStatus = "POSTED"
	EntryReversed JournalEntryStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event composed of at least
// two debit/credit lines. EntryNumber is assigned only at post time and is gapless
// and strictly monotonic per organization.
type JournalEntry struct {
	EntryID        string             `json:"entryID"`
	OrganizationID string             `json:"organizationID"`
	EntryNumber    int64              `json:"entryNumber"` // 0 while DRAFT
	EntryDate      time.Time          `json:"entryDate"`
	EntryType      JournalEntryType   `json:"entryType"`
	Status         JournalEntryStatus `json:"status"`
	Description    string             `json:"description"`

	// Optional link to the business document this entry came from.
	SourceType string `json:"sourceType,omitempty"`
	SourceID   string `json:"sourceID,omitempty"`

	// ReversalEntryID points at the REVERSING entry that undid this one;
	// ReversedEntryID points back from the REVERSING entry at its original.
	ReversalEntryID *string `json:"reversalEntryID,omitempty"`
	ReversedEntryID *string `json:"reversedEntryID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one debit or credit leg of a journal entry. Exactly one of Debit
// and Credit is non-zero, and whichever is set is positive.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	LineNo    int             `json:"lineNo"` // 1-based order within the entry
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// Side returns which ledger column this line posts to.
func (l *JournalLine) Side() BalanceSide {
	if l.Debit.IsPositive() {
		return DebitSide
	}
	return CreditSide
}

// Amount returns the magnitude of the line regardless of side.
func (l *JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// WellFormed reports whether exactly one side is set and positive.
func (l *JournalLine) WellFormed() bool {
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return debitSet != creditSet
}
