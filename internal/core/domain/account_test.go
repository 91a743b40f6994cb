package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalSide(t *testing.T) {
	assert.Equal(t, DebitSide, Asset.NormalSide())
	assert.Equal(t, DebitSide, Expense.NormalSide())
	assert.Equal(t, CreditSide, Liability.NormalSide())
	assert.Equal(t, CreditSide, Equity.NormalSide())
	assert.Equal(t, CreditSide, Revenue.NormalSide())
}

func TestSubTypeAllowed(t *testing.T) {
	assert.True(t, SubTypeAllowed(Asset, SubTypeBank))
	assert.True(t, SubTypeAllowed(Asset, SubTypeCash))
	assert.True(t, SubTypeAllowed(Liability, SubTypeAccountsPayable))
	assert.True(t, SubTypeAllowed(Revenue, SubTypeOperatingRevenue))
	assert.True(t, SubTypeAllowed(Expense, SubTypeDepreciation))

	// Cross-type pairings are rejected
	assert.False(t, SubTypeAllowed(Liability, SubTypeBank))
	assert.False(t, SubTypeAllowed(Asset, SubTypeOperatingRevenue))
	assert.False(t, SubTypeAllowed(Equity, SubTypeCash))
	assert.False(t, SubTypeAllowed(Revenue, AccountSubType("BOGUS")))
}

func TestNormalBalance(t *testing.T) {
	asset := Account{AccountType: Asset}
	liability := Account{AccountType: Liability}

	debit := decimal.NewFromInt(300)
	credit := decimal.NewFromInt(100)

	assert.True(t, decimal.NewFromInt(200).Equal(asset.NormalBalance(debit, credit)))
	assert.True(t, decimal.NewFromInt(-200).Equal(liability.NormalBalance(debit, credit)))
}

func TestCanPost(t *testing.T) {
	postable := Account{Status: AccountActive, AllowTransactions: true}
	assert.True(t, postable.CanPost())

	archived := Account{Status: AccountArchived, AllowTransactions: true}
	assert.False(t, archived.CanPost())

	header := Account{Status: AccountActive, AllowTransactions: true, RequireSubAccounts: true}
	assert.False(t, header.CanPost())

	noTxns := Account{Status: AccountActive, AllowTransactions: false}
	assert.False(t, noTxns.CanPost())
}
