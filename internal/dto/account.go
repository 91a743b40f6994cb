package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to register a new account.
type CreateAccountRequest struct {
	Code               string                `json:"code" binding:"required"`
	Name               string                `json:"name" binding:"required"`
	AccountType        domain.AccountType    `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AccountSubType     domain.AccountSubType `json:"accountSubType" binding:"required"`
	ParentAccountID    *string               `json:"parentAccountID"`
	AllowTransactions  *bool                 `json:"allowTransactions"` // Defaults to true
	RequireSubAccounts bool                  `json:"requireSubAccounts"`
	Description        string                `json:"description"`
}

// UpdateAccountRequest defines the metadata fields an admin edit may patch.
// Pointers distinguish "not provided" from zero values.
type UpdateAccountRequest struct {
	Name               *string                `json:"name"`
	Description        *string                `json:"description"`
	AccountType        *domain.AccountType    `json:"accountType"`
	AccountSubType     *domain.AccountSubType `json:"accountSubType"`
	Status             *domain.AccountStatus  `json:"status"`
	AllowTransactions  *bool                  `json:"allowTransactions"`
	RequireSubAccounts *bool                  `json:"requireSubAccounts"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID          string                `json:"accountID"`
	OrganizationID     string                `json:"organizationID"`
	Code               string                `json:"code"`
	Name               string                `json:"name"`
	AccountType        domain.AccountType    `json:"accountType"`
	AccountSubType     domain.AccountSubType `json:"accountSubType"`
	ParentAccountID    string                `json:"parentAccountID,omitempty"`
	Level              int                   `json:"level"`
	Status             domain.AccountStatus  `json:"status"`
	AllowTransactions  bool                  `json:"allowTransactions"`
	RequireSubAccounts bool                  `json:"requireSubAccounts"`
	Description        string                `json:"description,omitempty"`
	DebitBalance       decimal.Decimal       `json:"debitBalance"`
	CreditBalance      decimal.Decimal       `json:"creditBalance"`
	CurrentBalance     decimal.Decimal       `json:"currentBalance"`
	CreatedAt          time.Time             `json:"createdAt"`
	LastUpdatedAt      time.Time             `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		OrganizationID:     acc.OrganizationID,
		Code:               acc.Code,
		Name:               acc.Name,
		AccountType:        acc.AccountType,
		AccountSubType:     acc.AccountSubType,
		ParentAccountID:    acc.ParentAccountID,
		Level:              acc.Level,
		Status:             acc.Status,
		AllowTransactions:  acc.AllowTransactions,
		RequireSubAccounts: acc.RequireSubAccounts,
		Description:        acc.Description,
		DebitBalance:       acc.DebitBalance,
		CreditBalance:      acc.CreditBalance,
		CurrentBalance:     acc.CurrentBalance,
		CreatedAt:          acc.CreatedAt,
		LastUpdatedAt:      acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit           int     `form:"limit,default=50"`
	NextToken       *string `form:"nextToken"`
	IncludeInactive bool    `form:"includeInactive,default=false"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
