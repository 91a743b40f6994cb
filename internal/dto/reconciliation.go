package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankTransactionRequest is one imported statement line.
type BankTransactionRequest struct {
	TransactionDate time.Time                       `json:"transactionDate" binding:"required"`
	Amount          decimal.Decimal                 `json:"amount" binding:"required"`
	Direction       domain.BankTransactionDirection `json:"direction" binding:"required,oneof=DEBIT CREDIT"`
	BankReference   string                          `json:"bankReference" binding:"required"`
	Counterparty    string                          `json:"counterparty"`
}

// StartReconciliationRequest opens a reconciliation for an account against one
// statement period.
type StartReconciliationRequest struct {
	AccountID        string                   `json:"accountID" binding:"required"`
	StatementDate    time.Time                `json:"statementDate" binding:"required"`
	StartingBalance  decimal.Decimal          `json:"startingBalance"`
	StatementBalance decimal.Decimal          `json:"statementBalance"`
	Transactions     []BankTransactionRequest `json:"transactions" binding:"required,min=1,dive"`
}

// ManualMatchRequest pairs a bank transaction with a ledger row by hand.
type ManualMatchRequest struct {
	BankTransactionID string `json:"bankTransactionID" binding:"required"`
	LedgerEntryID     string `json:"ledgerEntryID" binding:"required"`
}

// CompleteReconciliationRequest finishes a reconciliation, optionally naming the
// posted adjustment entry that absorbs a remaining discrepancy.
type CompleteReconciliationRequest struct {
	AdjustmentEntryID *string `json:"adjustmentEntryID"`
}

// BankTransactionResponse mirrors domain.BankTransaction.
type BankTransactionResponse struct {
	BankTransactionID    string                          `json:"bankTransactionID"`
	TransactionDate      time.Time                       `json:"transactionDate"`
	Amount               decimal.Decimal                 `json:"amount"`
	Direction            domain.BankTransactionDirection `json:"direction"`
	BankReference        string                          `json:"bankReference"`
	Counterparty         string                          `json:"counterparty,omitempty"`
	Status               domain.BankTransactionStatus    `json:"status"`
	MatchedLedgerEntryID *string                         `json:"matchedLedgerEntryID,omitempty"`
}

// ReconciliationResponse mirrors domain.BankReconciliation.
type ReconciliationResponse struct {
	ReconciliationID    string                      `json:"reconciliationID"`
	OrganizationID      string                      `json:"organizationID"`
	AccountID           string                      `json:"accountID"`
	StatementDate       time.Time                   `json:"statementDate"`
	StartingBalance     decimal.Decimal             `json:"startingBalance"`
	StatementBalance    decimal.Decimal             `json:"statementBalance"`
	Status              domain.ReconciliationStatus `json:"status"`
	ReconciledAmount    decimal.Decimal             `json:"reconciledAmount"`
	UnmatchedBookAmount decimal.Decimal             `json:"unmatchedBookAmount"`
	DiscrepancyAmount   decimal.Decimal             `json:"discrepancyAmount"`
	AdjustmentEntryID   *string                     `json:"adjustmentEntryID,omitempty"`
	CompletedAt         *time.Time                  `json:"completedAt,omitempty"`
}

// ReconciliationDetailResponse adds the statement lines and both unmatched sets.
type ReconciliationDetailResponse struct {
	ReconciliationResponse
	BankTransactions []BankTransactionResponse `json:"bankTransactions"`
	UnmatchedBank    []BankTransactionResponse `json:"unmatchedBank"`
	UnmatchedBook    []LedgerEntryResponse     `json:"unmatchedBook"`
}

// MatchPairResponse reports one pairing made by the matcher.
type MatchPairResponse struct {
	BankTransactionID string `json:"bankTransactionID"`
	LedgerEntryID     string `json:"ledgerEntryID"`
	Automatic         bool   `json:"automatic"`
}

// AutoMatchResponse reports the outcome of one matcher run.
type AutoMatchResponse struct {
	ReconciliationID string                 `json:"reconciliationID"`
	Matched          []MatchPairResponse    `json:"matched"`
	UnmatchedBank    int                    `json:"unmatchedBank"`
	UnmatchedBook    int                    `json:"unmatchedBook"`
	Summary          ReconciliationResponse `json:"summary"`
}

// ToReconciliationResponse converts a domain reconciliation to its DTO.
func ToReconciliationResponse(r *domain.BankReconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		ReconciliationID:    r.ReconciliationID,
		OrganizationID:      r.OrganizationID,
		AccountID:           r.AccountID,
		StatementDate:       r.StatementDate,
		StartingBalance:     r.StartingBalance,
		StatementBalance:    r.StatementBalance,
		Status:              r.Status,
		ReconciledAmount:    r.ReconciledAmount,
		UnmatchedBookAmount: r.UnmatchedBookAmount,
		DiscrepancyAmount:   r.DiscrepancyAmount,
		AdjustmentEntryID:   r.AdjustmentEntryID,
		CompletedAt:         r.CompletedAt,
	}
}

// ToBankTransactionResponses converts statement lines to response DTOs.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	res := make([]BankTransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = BankTransactionResponse{
			BankTransactionID:    txn.BankTransactionID,
			TransactionDate:      txn.TransactionDate,
			Amount:               txn.Amount,
			Direction:            txn.Direction,
			BankReference:        txn.BankReference,
			Counterparty:         txn.Counterparty,
			Status:               txn.Status,
			MatchedLedgerEntryID: txn.MatchedLedgerEntryID,
		}
	}
	return res
}
