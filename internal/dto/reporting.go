package dto

import (
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters for trial balance generation.
type TrialBalanceParams struct {
	AsOf            time.Time `form:"asOf" time_format:"2006-01-02"`
	IncludeInactive bool      `form:"includeInactive,default=false"`
}

// TrialBalanceRowResponse mirrors domain.TrialBalanceRow.
type TrialBalanceRowResponse struct {
	AccountID     string             `json:"accountID"`
	AccountCode   string             `json:"accountCode"`
	AccountName   string             `json:"accountName"`
	AccountType   domain.AccountType `json:"accountType"`
	DebitBalance  decimal.Decimal    `json:"debitBalance"`
	CreditBalance decimal.Decimal    `json:"creditBalance"`
	NetBalance    decimal.Decimal    `json:"netBalance"`
}

// TrialBalanceResponse is the report returned across the boundary.
type TrialBalanceResponse struct {
	OrganizationID string                    `json:"organizationID"`
	AsOf           time.Time                 `json:"asOf"`
	GeneratedAt    time.Time                 `json:"generatedAt"`
	Rows           []TrialBalanceRowResponse `json:"rows"`
	TotalDebit     decimal.Decimal           `json:"totalDebit"`
	TotalCredit    decimal.Decimal           `json:"totalCredit"`
	IsBalanced     bool                      `json:"isBalanced"`
}

// ToTrialBalanceResponse converts a domain report to its response DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		OrganizationID: report.OrganizationID,
		AsOf:           report.AsOf,
		GeneratedAt:    report.GeneratedAt,
		TotalDebit:     report.TotalDebit,
		TotalCredit:    report.TotalCredit,
		IsBalanced:     report.IsBalanced,
	}
	for _, row := range report.Rows {
		resp.Rows = append(resp.Rows, TrialBalanceRowResponse{
			AccountID:     row.AccountID,
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			AccountType:   row.AccountType,
			DebitBalance:  row.DebitBalance,
			CreditBalance: row.CreditBalance,
			NetBalance:    row.NetBalance,
		})
	}
	return resp
}
