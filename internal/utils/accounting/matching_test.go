package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func bankTxn(id string, d int, amount string, dir domain.BankTransactionDirection) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: id,
		TransactionDate:   day(d),
		Amount:            dec(amount),
		Direction:         dir,
		Status:            domain.BankTxnUnmatched,
	}
}

func bookDebit(id string, d int, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{LedgerEntryID: id, EntryDate: day(d), Debit: dec(amount), Credit: decimal.Zero}
}

func bookCredit(id string, d int, amount string) domain.LedgerEntry {
	return domain.LedgerEntry{LedgerEntryID: id, EntryDate: day(d), Debit: decimal.Zero, Credit: dec(amount)}
}

func TestMatchStatementPairsByAmountAndSide(t *testing.T) {
	// A statement CREDIT (money in) must claim a book debit of the same amount
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-1", 10, "250.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookCredit("le-credit", 10, "250.00"), // wrong side, must be ignored
		bookDebit("le-debit", 10, "250.00"),
	}

	pairs := MatchStatement(bankTxns, bookRows, 3)
	require.Len(t, pairs, 1)
	assert.Equal(t, "bt-1", pairs[0].BankTransactionID)
	assert.Equal(t, "le-debit", pairs[0].LedgerEntryID)
}

func TestMatchStatementRespectsDateWindow(t *testing.T) {
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-1", 10, "100.00", domain.BankDebit),
	}
	bookRows := []domain.LedgerEntry{
		bookCredit("le-far", 20, "100.00"), // 10 days away, outside a 3-day window
	}

	pairs := MatchStatement(bankTxns, bookRows, 3)
	assert.Empty(t, pairs)

	// The same row matches once the window is wide enough
	pairs = MatchStatement(bankTxns, bookRows, 10)
	require.Len(t, pairs, 1)
	assert.Equal(t, "le-far", pairs[0].LedgerEntryID)
}

func TestMatchStatementPrefersNearestDateThenLowestID(t *testing.T) {
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-1", 10, "75.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookDebit("le-z-near", 11, "75.00"),
		bookDebit("le-a-far", 13, "75.00"),
	}

	pairs := MatchStatement(bankTxns, bookRows, 3)
	require.Len(t, pairs, 1)
	assert.Equal(t, "le-z-near", pairs[0].LedgerEntryID, "nearest date wins over lower id")

	// With equal distance the lowest LedgerEntryID wins
	bookRows = []domain.LedgerEntry{
		bookDebit("le-b", 11, "75.00"),
		bookDebit("le-a", 11, "75.00"),
	}
	pairs = MatchStatement(bankTxns, bookRows, 3)
	require.Len(t, pairs, 1)
	assert.Equal(t, "le-a", pairs[0].LedgerEntryID)
}

func TestMatchStatementClaimsEachRowOnce(t *testing.T) {
	// Two identical transactions, one candidate row: only the earlier
	// transaction gets it
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-2", 11, "40.00", domain.BankCredit),
		bankTxn("bt-1", 10, "40.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookDebit("le-1", 10, "40.00"),
	}

	pairs := MatchStatement(bankTxns, bookRows, 3)
	require.Len(t, pairs, 1)
	assert.Equal(t, "bt-1", pairs[0].BankTransactionID)
}

func TestMatchStatementSkipsAlreadyMatchedTransactions(t *testing.T) {
	matched := bankTxn("bt-done", 10, "10.00", domain.BankCredit)
	matched.Status = domain.BankTxnMatched

	pairs := MatchStatement([]domain.BankTransaction{matched}, []domain.LedgerEntry{
		bookDebit("le-1", 10, "10.00"),
	}, 3)
	assert.Empty(t, pairs)
}

func TestMatchStatementDeterministic(t *testing.T) {
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-3", 12, "20.00", domain.BankDebit),
		bankTxn("bt-1", 10, "20.00", domain.BankDebit),
		bankTxn("bt-2", 10, "35.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookCredit("le-1", 10, "20.00"),
		bookCredit("le-2", 12, "20.00"),
		bookDebit("le-3", 11, "35.00"),
	}

	first := MatchStatement(bankTxns, bookRows, 3)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, MatchStatement(bankTxns, bookRows, 3), "same inputs must give the same match set")
	}
}

func TestSummarizeReconciliation(t *testing.T) {
	recon := domain.BankReconciliation{
		StartingBalance:  dec("1000.00"),
		StatementBalance: dec("1150.00"),
	}
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-in", 10, "200.00", domain.BankCredit),
		bankTxn("bt-out", 11, "50.00", domain.BankDebit),
		bankTxn("bt-unmatched", 12, "999.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookDebit("le-in", 10, "200.00"),
		bookCredit("le-out", 11, "50.00"),
		bookDebit("le-open", 12, "25.00"), // unmatched book activity
	}
	matches := []domain.ReconciliationMatch{
		{BankTransactionID: "bt-in", LedgerEntryID: "le-in"},
		{BankTransactionID: "bt-out", LedgerEntryID: "le-out"},
	}

	summary := SummarizeReconciliation(recon, bankTxns, bookRows, matches)

	// 200 in minus 50 out
	assert.True(t, dec("150.00").Equal(summary.ReconciledAmount), "got %s", summary.ReconciledAmount)
	// le-open is a 25.00 debit nothing claimed
	assert.True(t, dec("25.00").Equal(summary.UnmatchedBookAmount), "got %s", summary.UnmatchedBookAmount)
	// 1150 - (1000 + 150 + 25) = -25
	assert.True(t, dec("-25.00").Equal(summary.DiscrepancyAmount), "got %s", summary.DiscrepancyAmount)
}

func TestSummarizeReconciliationZeroDiscrepancy(t *testing.T) {
	recon := domain.BankReconciliation{
		StartingBalance:  dec("500.00"),
		StatementBalance: dec("600.00"),
	}
	bankTxns := []domain.BankTransaction{
		bankTxn("bt-1", 10, "100.00", domain.BankCredit),
	}
	bookRows := []domain.LedgerEntry{
		bookDebit("le-1", 10, "100.00"),
	}
	matches := []domain.ReconciliationMatch{
		{BankTransactionID: "bt-1", LedgerEntryID: "le-1"},
	}

	summary := SummarizeReconciliation(recon, bankTxns, bookRows, matches)
	assert.True(t, summary.DiscrepancyAmount.IsZero(), "got %s", summary.DiscrepancyAmount)
}
