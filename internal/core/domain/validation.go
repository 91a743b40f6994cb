package domain

import "github.com/shopspring/decimal"

// AccountingValidation is the generic validation result returned across the
// request/response boundary.
type AccountingValidation struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// AddError records a blocking problem and marks the result invalid.
func (v *AccountingValidation) AddError(msg string) {
	v.IsValid = false
	v.Errors = append(v.Errors, msg)
}

// AddWarning records a non-blocking observation.
func (v *AccountingValidation) AddWarning(msg string) {
	v.Warnings = append(v.Warnings, msg)
}

// JournalEntryValidation extends AccountingValidation with the balance figures a
// caller needs to correct an unbalanced entry.
type JournalEntryValidation struct {
	AccountingValidation
	IsBalanced  bool            `json:"isBalanced"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	// Difference is DebitTotal minus CreditTotal, zero when balanced.
	Difference decimal.Decimal `json:"difference"`
}
