package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelBankReconciliation converts a domain BankReconciliation to its model
func ToModelBankReconciliation(d domain.BankReconciliation) models.BankReconciliation {
	return models.BankReconciliation{
		ReconciliationID:    d.ReconciliationID,
		OrganizationID:      d.OrganizationID,
		AccountID:           d.AccountID,
		StatementDate:       d.StatementDate,
		StartingBalance:     d.StartingBalance,
		StatementBalance:    d.StatementBalance,
		Status:              string(d.Status),
		ReconciledAmount:    d.ReconciledAmount,
		UnmatchedBookAmount: d.UnmatchedBookAmount,
		DiscrepancyAmount:   d.DiscrepancyAmount,
		AdjustmentEntryID:   d.AdjustmentEntryID,
		CompletedAt:         d.CompletedAt,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankReconciliation converts a model BankReconciliation to its domain form
func ToDomainBankReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID:    m.ReconciliationID,
		OrganizationID:      m.OrganizationID,
		AccountID:           m.AccountID,
		StatementDate:       m.StatementDate,
		StartingBalance:     m.StartingBalance,
		StatementBalance:    m.StatementBalance,
		Status:              domain.ReconciliationStatus(m.Status),
		ReconciledAmount:    m.ReconciledAmount,
		UnmatchedBookAmount: m.UnmatchedBookAmount,
		DiscrepancyAmount:   m.DiscrepancyAmount,
		AdjustmentEntryID:   m.AdjustmentEntryID,
		CompletedAt:         m.CompletedAt,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBankTransaction converts a domain BankTransaction to its model
func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		BankTransactionID:    d.BankTransactionID,
		OrganizationID:       d.OrganizationID,
		AccountID:            d.AccountID,
		ReconciliationID:     d.ReconciliationID,
		TransactionDate:      d.TransactionDate,
		Amount:               d.Amount,
		Direction:            string(d.Direction),
		BankReference:        d.BankReference,
		Counterparty:         d.Counterparty,
		Status:               string(d.Status),
		MatchedLedgerEntryID: d.MatchedLedgerEntryID,
		CreatedAt:            d.CreatedAt,
	}
}

// ToDomainBankTransaction converts a model BankTransaction to its domain form
func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID:    m.BankTransactionID,
		OrganizationID:       m.OrganizationID,
		AccountID:            m.AccountID,
		ReconciliationID:     m.ReconciliationID,
		TransactionDate:      m.TransactionDate,
		Amount:               m.Amount,
		Direction:            domain.BankTransactionDirection(m.Direction),
		BankReference:        m.BankReference,
		Counterparty:         m.Counterparty,
		Status:               domain.BankTransactionStatus(m.Status),
		MatchedLedgerEntryID: m.MatchedLedgerEntryID,
		CreatedAt:            m.CreatedAt,
	}
}

// ToDomainBankTransactionSlice converts model BankTransactions to domain ones
func ToDomainBankTransactionSlice(ms []models.BankTransaction) []domain.BankTransaction {
	ds := make([]domain.BankTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankTransaction(m)
	}
	return ds
}

// ToDomainReconciliationMatch converts a model ReconciliationMatch to its domain form
func ToDomainReconciliationMatch(m models.ReconciliationMatch) domain.ReconciliationMatch {
	return domain.ReconciliationMatch{
		ReconciliationID:  m.ReconciliationID,
		BankTransactionID: m.BankTransactionID,
		LedgerEntryID:     m.LedgerEntryID,
		Automatic:         m.Automatic,
		MatchedAt:         m.MatchedAt,
	}
}
