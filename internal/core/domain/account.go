package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide identifies the debit or credit column of the ledger.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSide returns the side that increases balances of this account type.
// Assets and expenses are debit-normal; liabilities, equity and revenue are
// credit-normal.
func (t AccountType) NormalSide() BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountSubType refines an AccountType. Each subtype belongs to exactly one type;
// any other pairing is rejected at the boundary.
type AccountSubType string

const (
	SubTypeCash               AccountSubType = "CASH"
	SubTypeBank               AccountSubType = "BANK"
	SubTypeAccountsReceivable AccountSubType = "ACCOUNTS_RECEIVABLE"
	SubTypeInventory          AccountSubType = "INVENTORY"
	SubTypeFixedAsset         AccountSubType = "FIXED_ASSET"
	SubTypeOtherAsset         AccountSubType = "OTHER_ASSET"

	SubTypeAccountsPayable AccountSubType = "ACCOUNTS_PAYABLE"
	SubTypeCreditCard      AccountSubType = "CREDIT_CARD"
	SubTypeTaxPayable      AccountSubType = "TAX_PAYABLE"
	SubTypeLoan            AccountSubType = "LOAN"
	SubTypeOtherLiability  AccountSubType = "OTHER_LIABILITY"

	SubTypeOwnerEquity        AccountSubType = "OWNER_EQUITY"
	SubTypeRetainedEarnings   AccountSubType = "RETAINED_EARNINGS"
	SubTypeContributedCapital AccountSubType = "CONTRIBUTED_CAPITAL"

	SubTypeOperatingRevenue AccountSubType = "OPERATING_REVENUE"
	SubTypeOtherRevenue     AccountSubType = "OTHER_REVENUE"

	SubTypeOperatingExpense AccountSubType = "OPERATING_EXPENSE"
	SubTypePayrollExpense   AccountSubType = "PAYROLL_EXPENSE"
	SubTypeDepreciation     AccountSubType = "DEPRECIATION"
	SubTypeOtherExpense     AccountSubType = "OTHER_EXPENSE"
)

var allowedSubTypes = map[AccountType][]AccountSubType{
	Asset:     {SubTypeCash, SubTypeBank, SubTypeAccountsReceivable, SubTypeInventory, SubTypeFixedAsset, SubTypeOtherAsset},
	Liability: {SubTypeAccountsPayable, SubTypeCreditCard, SubTypeTaxPayable, SubTypeLoan, SubTypeOtherLiability},
	Equity:    {SubTypeOwnerEquity, SubTypeRetainedEarnings, SubTypeContributedCapital},
	Revenue:   {SubTypeOperatingRevenue, SubTypeOtherRevenue},
	Expense:   {SubTypeOperatingExpense, SubTypePayrollExpense, SubTypeDepreciation, SubTypeOtherExpense},
}

// SubTypeAllowed reports whether subType is a valid refinement of t.
func SubTypeAllowed(t AccountType, subType AccountSubType) bool {
	for _, st := range allowedSubTypes[t] {
		if st == subType {
			return true
		}
	}
	return false
}

// AccountStatus tracks an account's lifecycle. Accounts are never physically
// deleted once they carry postings; they are archived instead.
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
	AccountArchived AccountStatus = "ARCHIVED"
)

// Account is one node of the chart of accounts. The tree is an arena keyed by id
// with ParentAccountID as a lookup key; children are computed by indexing, never
// embedded, so cycles cannot be expressed.
type Account struct {
	AccountID          string         `json:"accountID"`
	OrganizationID     string         `json:"organizationID"`
	Code               string         `json:"code"` // Human code, unique per organization
	Name               string         `json:"name"`
	AccountType        AccountType    `json:"accountType"`
	AccountSubType     AccountSubType `json:"accountSubType"`
	ParentAccountID    string         `json:"parentAccountID"` // Empty for roots
	Level              int            `json:"level"`           // 0 for roots, parent.Level+1 otherwise
	Status             AccountStatus  `json:"status"`
	AllowTransactions  bool           `json:"allowTransactions"`
	RequireSubAccounts bool           `json:"requireSubAccounts"`
	Description        string         `json:"description"`
	AuditFields

	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	// CurrentBalance is DebitBalance minus CreditBalance expressed in the
	// account's normal-side sign.
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// NormalBalance converts a raw debit-minus-credit figure into the account's
// normal-side sign.
func (a *Account) NormalBalance(debit, credit decimal.Decimal) decimal.Decimal {
	if a.AccountType.NormalSide() == DebitSide {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// CanPost reports whether the account may receive direct postings.
func (a *Account) CanPost() bool {
	return a.Status == AccountActive && a.AllowTransactions && !a.RequireSubAccounts
}
