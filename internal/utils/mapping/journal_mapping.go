package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
// Lines travel separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		EntryType:       string(d.EntryType),
		Status:          string(d.Status),
		Description:     d.Description,
		SourceType:      d.SourceType,
		SourceID:        d.SourceID,
		ReversalEntryID: d.ReversalEntryID,
		ReversedEntryID: d.ReversedEntryID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		EntryType:       domain.JournalEntryType(m.EntryType),
		Status:          domain.JournalEntryStatus(m.Status),
		Description:     m.Description,
		SourceType:      m.SourceType,
		SourceID:        m.SourceID,
		ReversalEntryID: m.ReversalEntryID,
		ReversedEntryID: m.ReversedEntryID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		LineNo:    d.LineNo,
		AccountID: d.AccountID,
		Debit:     d.Debit,
		Credit:    d.Credit,
		Memo:      d.Memo,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		LineNo:    m.LineNo,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Memo:      m.Memo,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain ones
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
