package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionDirection is the statement's view of a movement: CREDIT means
// money into the account, DEBIT means money out.
type BankTransactionDirection string

const (
	BankCredit BankTransactionDirection = "CREDIT"
	BankDebit  BankTransactionDirection = "DEBIT"
)

// BankTransactionStatus tracks a statement line through matching. Matching only
// moves lines between UNMATCHED and MATCHED; VERIFIED and DISPUTED are manual
// review states layered on top.
type BankTransactionStatus string

const (
	BankTxnUnmatched BankTransactionStatus = "UNMATCHED"
	BankTxnMatched   BankTransactionStatus = "MATCHED"
	BankTxnVerified  BankTransactionStatus = "VERIFIED"
	BankTxnDisputed  BankTransactionStatus = "DISPUTED"
)

// BankTransaction is one imported bank-statement line.
type BankTransaction struct {
	BankTransactionID    string                   `json:"bankTransactionID"`
	OrganizationID       string                   `json:"organizationID"`
	AccountID            string                   `json:"accountID"`
	ReconciliationID     string                   `json:"reconciliationID"`
	TransactionDate      time.Time                `json:"transactionDate"`
	Amount               decimal.Decimal          `json:"amount"` // Always positive; see Direction
	Direction            BankTransactionDirection `json:"direction"`
	BankReference        string                   `json:"bankReference"`
	Counterparty         string                   `json:"counterparty"`
	Status               BankTransactionStatus    `json:"status"`
	MatchedLedgerEntryID *string                  `json:"matchedLedgerEntryID,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
}

// BookSide returns the ledger column a movement in this direction should occupy
// on the reconciled (asset) account: a statement CREDIT is a book debit.
func (d BankTransactionDirection) BookSide() BalanceSide {
	if d == BankCredit {
		return DebitSide
	}
	return CreditSide
}

// ReconciliationStatus tracks a reconciliation run. IN_PROGRESS and DISCREPANCY
// move back and forth as the summary is recomputed; COMPLETED is terminal.
type ReconciliationStatus string

const (
	ReconciliationPending     ReconciliationStatus = "PENDING"
	ReconciliationInProgress  ReconciliationStatus = "IN_PROGRESS"
	ReconciliationCompleted   ReconciliationStatus = "COMPLETED"
	ReconciliationDiscrepancy ReconciliationStatus = "DISCREPANCY"
)

// Open reports whether the run still accepts matching work. A DISCREPANCY run
// is parked, not finished: matches and unmatches may still repair it.
func (s ReconciliationStatus) Open() bool {
	return s == ReconciliationInProgress || s == ReconciliationDiscrepancy
}

// BankReconciliation is one reconciliation of an account against a statement
// period. It is created when a statement import begins, mutated as matches are
// confirmed, and becomes COMPLETED only when the discrepancy is zero or has been
// explicitly absorbed by an adjustment entry. It is never silently discarded.
type BankReconciliation struct {
	ReconciliationID string               `json:"reconciliationID"`
	OrganizationID   string               `json:"organizationID"`
	AccountID        string               `json:"accountID"`
	StatementDate    time.Time            `json:"statementDate"`
	StartingBalance  decimal.Decimal      `json:"startingBalance"`
	StatementBalance decimal.Decimal      `json:"statementBalance"`
	Status           ReconciliationStatus `json:"status"`

	ReconciledAmount    decimal.Decimal `json:"reconciledAmount"`
	UnmatchedBookAmount decimal.Decimal `json:"unmatchedBookAmount"`
	DiscrepancyAmount   decimal.Decimal `json:"discrepancyAmount"`

	// AdjustmentEntryID, when set, names the posted journal entry that absorbs a
	// non-zero discrepancy and unblocks completion.
	AdjustmentEntryID *string    `json:"adjustmentEntryID,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	AuditFields
}

// ReconciliationMatch pairs one bank transaction with one ledger row.
type ReconciliationMatch struct {
	ReconciliationID  string    `json:"reconciliationID"`
	BankTransactionID string    `json:"bankTransactionID"`
	LedgerEntryID     string    `json:"ledgerEntryID"`
	Automatic         bool      `json:"automatic"`
	MatchedAt         time.Time `json:"matchedAt"`
}
