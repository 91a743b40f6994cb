package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's line in a trial balance report.
type TrialBalanceRow struct {
	AccountID     string          `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	AccountStatus AccountStatus   `json:"accountStatus"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	NetBalance    decimal.Decimal `json:"netBalance"` // Normal-sign balance
}

// TrialBalanceReport summarizes every account's ledger position as of a point in
// time. IsBalanced must always hold when the journal engine's invariants held for
// every posted entry; a false value is a ledger defect, not a user error.
type TrialBalanceReport struct {
	OrganizationID string            `json:"organizationID"`
	AsOf           time.Time         `json:"asOf"`
	GeneratedAt    time.Time         `json:"generatedAt"` // Snapshot time for reproducible re-queries
	Rows           []TrialBalanceRow `json:"rows"`
	TotalDebit     decimal.Decimal   `json:"totalDebit"`
	TotalCredit    decimal.Decimal   `json:"totalCredit"`
	IsBalanced     bool              `json:"isBalanced"`
}
