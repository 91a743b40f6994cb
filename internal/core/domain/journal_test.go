package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalLineWellFormed(t *testing.T) {
	debitLine := JournalLine{Debit: decimal.NewFromInt(100), Credit: decimal.Zero}
	assert.True(t, debitLine.WellFormed())
	assert.Equal(t, DebitSide, debitLine.Side())
	assert.True(t, decimal.NewFromInt(100).Equal(debitLine.Amount()))

	creditLine := JournalLine{Debit: decimal.Zero, Credit: decimal.NewFromInt(50)}
	assert.True(t, creditLine.WellFormed())
	assert.Equal(t, CreditSide, creditLine.Side())
	assert.True(t, decimal.NewFromInt(50).Equal(creditLine.Amount()))

	bothSides := JournalLine{Debit: decimal.NewFromInt(10), Credit: decimal.NewFromInt(10)}
	assert.False(t, bothSides.WellFormed())

	neitherSide := JournalLine{Debit: decimal.Zero, Credit: decimal.Zero}
	assert.False(t, neitherSide.WellFormed())

	negative := JournalLine{Debit: decimal.NewFromInt(-5), Credit: decimal.Zero}
	assert.False(t, negative.WellFormed())
}

func TestJournalEntryTypeValid(t *testing.T) {
	assert.True(t, EntryStandard.Valid())
	assert.True(t, EntryAdjusting.Valid())
	assert.True(t, EntryClosing.Valid())
	assert.True(t, EntryReversing.Valid())
	assert.False(t, JournalEntryType("BOGUS").Valid())
}
