package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		LedgerEntryID:  d.LedgerEntryID,
		OrganizationID: d.OrganizationID,
		AccountID:      d.AccountID,
		EntryID:        d.EntryID,
		EntryNumber:    d.EntryNumber,
		LineNo:         d.LineNo,
		EntryDate:      d.EntryDate,
		Debit:          d.Debit,
		Credit:         d.Credit,
		RunningBalance: d.RunningBalance,
		CreatedAt:      d.CreatedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:  m.LedgerEntryID,
		OrganizationID: m.OrganizationID,
		AccountID:      m.AccountID,
		EntryID:        m.EntryID,
		EntryNumber:    m.EntryNumber,
		LineNo:         m.LineNo,
		EntryDate:      m.EntryDate,
		Debit:          m.Debit,
		Credit:         m.Credit,
		RunningBalance: m.RunningBalance,
		CreatedAt:      m.CreatedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain ones
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
