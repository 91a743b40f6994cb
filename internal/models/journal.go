package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is one journal entry header row. EntryNumber is 0 while DRAFT and
// assigned from the organization's sequence at post time.
type JournalEntry struct {
	EntryID         string    `db:"entry_id"`
	OrganizationID  string    `db:"organization_id"`
	EntryNumber     int64     `db:"entry_number"`
	EntryDate       time.Time `db:"entry_date"`
	EntryType       string    `db:"entry_type"`
	Status          string    `db:"status"`
	Description     string    `db:"description"`
	SourceType      string    `db:"source_type"`
	SourceID        string    `db:"source_id"`
	ReversalEntryID *string   `db:"reversal_entry_id"`
	ReversedEntryID *string   `db:"reversed_entry_id"`
	AuditFields
}

// JournalLine is one debit or credit leg row of a journal entry.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	LineNo    int             `db:"line_no"`
	AccountID string          `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Memo      string          `db:"memo"`
}
