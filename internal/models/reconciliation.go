package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankReconciliation is one reconciliation run row.
type BankReconciliation struct {
	ReconciliationID    string          `db:"reconciliation_id"`
	OrganizationID      string          `db:"organization_id"`
	AccountID           string          `db:"account_id"`
	StatementDate       time.Time       `db:"statement_date"`
	StartingBalance     decimal.Decimal `db:"starting_balance"`
	StatementBalance    decimal.Decimal `db:"statement_balance"`
	Status              string          `db:"status"`
	ReconciledAmount    decimal.Decimal `db:"reconciled_amount"`
	UnmatchedBookAmount decimal.Decimal `db:"unmatched_book_amount"`
	DiscrepancyAmount   decimal.Decimal `db:"discrepancy_amount"`
	AdjustmentEntryID   *string         `db:"adjustment_entry_id"`
	CompletedAt         *time.Time      `db:"completed_at"`
	AuditFields
}

// BankTransaction is one imported statement line row.
type BankTransaction struct {
	BankTransactionID    string          `db:"bank_transaction_id"`
	OrganizationID       string          `db:"organization_id"`
	AccountID            string          `db:"account_id"`
	ReconciliationID     string          `db:"reconciliation_id"`
	TransactionDate      time.Time       `db:"transaction_date"`
	Amount               decimal.Decimal `db:"amount"`
	Direction            string          `db:"direction"`
	BankReference        string          `db:"bank_reference"`
	Counterparty         string          `db:"counterparty"`
	Status               string          `db:"status"`
	MatchedLedgerEntryID *string         `db:"matched_ledger_entry_id"`
	CreatedAt            time.Time       `db:"created_at"`
}

// ReconciliationMatch links one bank transaction to one ledger row.
type ReconciliationMatch struct {
	ReconciliationID  string    `db:"reconciliation_id"`
	BankTransactionID string    `db:"bank_transaction_id"`
	LedgerEntryID     string    `db:"ledger_entry_id"`
	Automatic         bool      `db:"automatic"`
	MatchedAt         time.Time `db:"matched_at"`
}
