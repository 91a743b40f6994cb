package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntriesParams defines query parameters for reading an account's ledger.
type LedgerEntriesParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50"`
	NextToken *string    `form:"nextToken"`
}

// LedgerEntryResponse mirrors domain.LedgerEntry.
type LedgerEntryResponse struct {
	LedgerEntryID  string          `json:"ledgerEntryID"`
	AccountID      string          `json:"accountID"`
	EntryID        string          `json:"entryID"`
	EntryNumber    int64           `json:"entryNumber"`
	LineNo         int             `json:"lineNo"`
	EntryDate      time.Time       `json:"entryDate"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerEntriesResponse wraps a page of ledger rows. AsOf is the snapshot time
// the page was read at; repeating the query with the same bounds and token
// against the same snapshot returns identical rows.
type LedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
	AsOf      time.Time             `json:"asOf"`
}

// ToLedgerEntryResponses converts domain ledger rows to response DTOs.
func ToLedgerEntryResponses(rows []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(rows))
	for i, row := range rows {
		res[i] = LedgerEntryResponse{
			LedgerEntryID:  row.LedgerEntryID,
			AccountID:      row.AccountID,
			EntryID:        row.EntryID,
			EntryNumber:    row.EntryNumber,
			LineNo:         row.LineNo,
			EntryDate:      row.EntryDate,
			Debit:          row.Debit,
			Credit:         row.Credit,
			RunningBalance: row.RunningBalance,
		}
	}
	return res
}

// AccountBalanceResponse reports an account's running balance as of a date.
type AccountBalanceResponse struct {
	AccountID string          `json:"accountID"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}
