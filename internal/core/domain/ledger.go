package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one append-only general-ledger row, produced per posted journal
// line. Rows are never mutated or deleted after creation; corrections happen via
// new reversing or adjusting entries.
//
// The canonical ordering for an account's ledger is (EntryDate, EntryNumber,
// LineNo) ascending. RunningBalance is the account's normal-sign balance
// immediately after this row under that ordering.
type LedgerEntry struct {
	LedgerEntryID  string          `json:"ledgerEntryID"`
	OrganizationID string          `json:"organizationID"`
	AccountID      string          `json:"accountID"`
	EntryID        string          `json:"entryID"`
	EntryNumber    int64           `json:"entryNumber"`
	LineNo         int             `json:"lineNo"`
	EntryDate      time.Time       `json:"entryDate"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
}
