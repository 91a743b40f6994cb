package accounting

import (
	"sort"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchPair is one pairing proposed by the statement matcher.
type MatchPair struct {
	BankTransactionID string
	LedgerEntryID     string
}

// MatchStatement runs the deterministic greedy matcher: bank transactions are
// visited in (TransactionDate, BankTransactionID) order, and each one claims the
// candidate ledger row with equal amount on the corresponding book side within
// windowDays of its date. Ties on date distance go to the lowest LedgerEntryID.
// A claimed row is never reconsidered, so the same inputs always produce the
// same match set.
func MatchStatement(bankTxns []domain.BankTransaction, bookRows []domain.LedgerEntry, windowDays int) []MatchPair {
	txns := make([]domain.BankTransaction, 0, len(bankTxns))
	for _, txn := range bankTxns {
		if txn.Status == domain.BankTxnUnmatched {
			txns = append(txns, txn)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].TransactionDate.Equal(txns[j].TransactionDate) {
			return txns[i].TransactionDate.Before(txns[j].TransactionDate)
		}
		return txns[i].BankTransactionID < txns[j].BankTransactionID
	})

	available := make(map[string]domain.LedgerEntry, len(bookRows))
	for _, row := range bookRows {
		available[row.LedgerEntryID] = row
	}

	var pairs []MatchPair
	for _, txn := range txns {
		var (
			best     *domain.LedgerEntry
			bestDist int
		)
		for id := range available {
			row := available[id]
			if !amountMatches(txn, row) {
				continue
			}
			dist := dateDistanceDays(txn.TransactionDate, row.EntryDate)
			if dist > windowDays {
				continue
			}
			if best == nil || dist < bestDist || (dist == bestDist && row.LedgerEntryID < best.LedgerEntryID) {
				candidate := row
				best = &candidate
				bestDist = dist
			}
		}
		if best != nil {
			pairs = append(pairs, MatchPair{
				BankTransactionID: txn.BankTransactionID,
				LedgerEntryID:     best.LedgerEntryID,
			})
			delete(available, best.LedgerEntryID)
		}
	}
	return pairs
}

// ReconciliationSummary is the recomputed financial position of one
// reconciliation run.
type ReconciliationSummary struct {
	ReconciledAmount    decimal.Decimal
	UnmatchedBookAmount decimal.Decimal
	DiscrepancyAmount   decimal.Decimal
}

// SummarizeReconciliation recomputes a reconciliation's figures from first
// principles. ReconciledAmount is the signed net of matched bank transactions
// (CREDIT positive, DEBIT negative, the account's normal-debit view).
// UnmatchedBookAmount is the signed net of candidate ledger rows no match has
// claimed. The discrepancy is the statement balance minus what the books
// explain:
//
//	discrepancy = statementBalance - (startingBalance + reconciled + unmatchedBook)
func SummarizeReconciliation(recon domain.BankReconciliation, bankTxns []domain.BankTransaction, bookRows []domain.LedgerEntry, matches []domain.ReconciliationMatch) ReconciliationSummary {
	matchedBank := make(map[string]struct{}, len(matches))
	matchedBook := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matchedBank[m.BankTransactionID] = struct{}{}
		matchedBook[m.LedgerEntryID] = struct{}{}
	}

	reconciled := decimal.Zero
	for _, txn := range bankTxns {
		if _, ok := matchedBank[txn.BankTransactionID]; !ok {
			continue
		}
		if txn.Direction == domain.BankCredit {
			reconciled = reconciled.Add(txn.Amount)
		} else {
			reconciled = reconciled.Sub(txn.Amount)
		}
	}

	unmatchedBook := decimal.Zero
	for _, row := range bookRows {
		if _, ok := matchedBook[row.LedgerEntryID]; ok {
			continue
		}
		unmatchedBook = unmatchedBook.Add(row.Debit).Sub(row.Credit)
	}

	explained := recon.StartingBalance.Add(reconciled).Add(unmatchedBook)
	return ReconciliationSummary{
		ReconciledAmount:    reconciled,
		UnmatchedBookAmount: unmatchedBook,
		DiscrepancyAmount:   recon.StatementBalance.Sub(explained),
	}
}

// amountMatches reports whether the ledger row carries the transaction's amount
// on the book side its direction maps to: a statement CREDIT is a book debit.
func amountMatches(txn domain.BankTransaction, row domain.LedgerEntry) bool {
	if txn.Direction.BookSide() == domain.DebitSide {
		return row.Debit.Equal(txn.Amount)
	}
	return row.Credit.Equal(txn.Amount)
}

// dateDistanceDays is the whole-day distance between two timestamps, compared on
// their UTC calendar dates.
func dateDistanceDays(a, b time.Time) int {
	ad := a.UTC().Truncate(24 * time.Hour)
	bd := b.UTC().Truncate(24 * time.Hour)
	diff := int(ad.Sub(bd).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
