package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one append-only general-ledger row. The table carries no
// update path; corrections arrive as new rows from reversing entries.
type LedgerEntry struct {
	LedgerEntryID  string          `db:"ledger_entry_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      string          `db:"account_id"`
	EntryID        string          `db:"entry_id"`
	EntryNumber    int64           `db:"entry_number"`
	LineNo         int             `db:"line_no"`
	EntryDate      time.Time       `db:"entry_date"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	RunningBalance decimal.Decimal `db:"running_balance"`
	CreatedAt      time.Time       `db:"created_at"`
}
