package models

import (
	"github.com/shopspring/decimal"
)

// Account is one chart-of-accounts row.
// ParentAccountID maps to a nullable foreign key; empty string means root.
type Account struct {
	AccountID          string `db:"account_id"`
	OrganizationID     string `db:"organization_id"`
	Code               string `db:"code"`
	Name               string `db:"name"`
	AccountType        string `db:"account_type"`
	AccountSubType     string `db:"account_sub_type"`
	ParentAccountID    string `db:"parent_account_id"`
	Level              int    `db:"level"`
	Status             string `db:"status"`
	AllowTransactions  bool   `db:"allow_transactions"`
	RequireSubAccounts bool   `db:"require_sub_accounts"`
	Description        string `db:"description"`
	AuditFields

	DebitBalance   decimal.Decimal `db:"debit_balance"`
	CreditBalance  decimal.Decimal `db:"credit_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
}
