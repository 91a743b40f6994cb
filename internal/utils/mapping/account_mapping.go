package mapping

import (
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		OrganizationID:     d.OrganizationID,
		Code:               d.Code,
		Name:               d.Name,
		AccountType:        string(d.AccountType),
		AccountSubType:     string(d.AccountSubType),
		ParentAccountID:    d.ParentAccountID,
		Level:              d.Level,
		Status:             string(d.Status),
		AllowTransactions:  d.AllowTransactions,
		RequireSubAccounts: d.RequireSubAccounts,
		Description:        d.Description,
		AuditFields:        ToModelAuditFields(d.AuditFields),
		DebitBalance:       d.DebitBalance,
		CreditBalance:      d.CreditBalance,
		CurrentBalance:     d.CurrentBalance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		OrganizationID:     m.OrganizationID,
		Code:               m.Code,
		Name:               m.Name,
		AccountType:        domain.AccountType(m.AccountType),
		AccountSubType:     domain.AccountSubType(m.AccountSubType),
		ParentAccountID:    m.ParentAccountID,
		Level:              m.Level,
		Status:             domain.AccountStatus(m.Status),
		AllowTransactions:  m.AllowTransactions,
		RequireSubAccounts: m.RequireSubAccounts,
		Description:        m.Description,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
		DebitBalance:       m.DebitBalance,
		CreditBalance:      m.CreditBalance,
		CurrentBalance:     m.CurrentBalance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
