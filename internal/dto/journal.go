package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit leg of a journal entry request.
// Exactly one of Debit and Credit must be positive; the other must be absent or
// zero.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// CreateJournalEntryRequest defines the data needed to create a DRAFT entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time               `json:"entryDate" binding:"required"`
	EntryType   domain.JournalEntryType `json:"entryType" binding:"omitempty,oneof=STANDARD ADJUSTING CLOSING"`
	Description string                  `json:"description" binding:"required"`
	SourceType  string                  `json:"sourceType"`
	SourceID    string                  `json:"sourceID"`
	Lines       []JournalLineRequest    `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest patches a DRAFT entry. A nil Lines leaves the lines
// untouched; a non-nil Lines replaces them entirely.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time            `json:"entryDate"`
	Description *string               `json:"description"`
	Lines       *[]JournalLineRequest `json:"lines"`
}

// ReverseJournalEntryRequest carries the reason recorded on the reversing entry.
type ReverseJournalEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse mirrors domain.JournalLine.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	LineNo    int             `json:"lineNo"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                    `json:"entryID"`
	OrganizationID  string                    `json:"organizationID"`
	EntryNumber     int64                     `json:"entryNumber,omitempty"`
	EntryDate       time.Time                 `json:"entryDate"`
	EntryType       domain.JournalEntryType   `json:"entryType"`
	Status          domain.JournalEntryStatus `json:"status"`
	Description     string                    `json:"description"`
	SourceType      string                    `json:"sourceType,omitempty"`
	SourceID        string                    `json:"sourceID,omitempty"`
	ReversalEntryID *string                   `json:"reversalEntryID,omitempty"`
	ReversedEntryID *string                   `json:"reversedEntryID,omitempty"`
	Lines           []JournalLineResponse     `json:"lines,omitempty"`
	CreatedAt       time.Time                 `json:"createdAt"`
	CreatedBy       string                    `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:         entry.EntryID,
		OrganizationID:  entry.OrganizationID,
		EntryNumber:     entry.EntryNumber,
		EntryDate:       entry.EntryDate,
		EntryType:       entry.EntryType,
		Status:          entry.Status,
		Description:     entry.Description,
		SourceType:      entry.SourceType,
		SourceID:        entry.SourceID,
		ReversalEntryID: entry.ReversalEntryID,
		ReversedEntryID: entry.ReversedEntryID,
		CreatedAt:       entry.CreatedAt,
		CreatedBy:       entry.CreatedBy,
	}
	for _, line := range entry.Lines {
		resp.Lines = append(resp.Lines, JournalLineResponse{
			LineID:    line.LineID,
			LineNo:    line.LineNo,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
		})
	}
	return resp
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit            int     `form:"limit,default=20"`
	NextToken        *string `form:"nextToken"`
	IncludeReversals bool    `form:"includeReversals,default=true"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// JournalEntryValidationResponse mirrors domain.JournalEntryValidation.
type JournalEntryValidationResponse struct {
	IsValid     bool            `json:"isValid"`
	IsBalanced  bool            `json:"isBalanced"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Difference  decimal.Decimal `json:"difference"`
	Errors      []string        `json:"errors"`
	Warnings    []string        `json:"warnings"`
}

// ToJournalEntryValidationResponse converts a validation result to its DTO.
func ToJournalEntryValidationResponse(v *domain.JournalEntryValidation) JournalEntryValidationResponse {
	return JournalEntryValidationResponse{
		IsValid:     v.IsValid,
		IsBalanced:  v.IsBalanced,
		DebitTotal:  v.DebitTotal,
		CreditTotal: v.CreditTotal,
		Difference:  v.Difference,
		Errors:      v.Errors,
		Warnings:    v.Warnings,
	}
}
