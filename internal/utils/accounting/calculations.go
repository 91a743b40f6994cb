package accounting

import (
	"fmt"
	"sort"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedEffect returns the normal-sign effect of posting amount to the given side
// of an account of the given type.
// DEBIT to ASSET/EXPENSE -> positive; CREDIT to ASSET/EXPENSE -> negative.
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative; CREDIT -> positive.
func SignedEffect(side domain.BalanceSide, amount decimal.Decimal, accountType domain.AccountType) (decimal.Decimal, error) {
	if !accountType.Valid() {
		return decimal.Zero, fmt.Errorf("unknown account type %q", accountType)
	}
	if accountType.NormalSide() == side {
		return amount, nil
	}
	return amount.Neg(), nil
}

// EntryTotals sums the debit and credit columns of an entry's lines at full
// decimal precision.
func EntryTotals(lines []domain.JournalLine) (debitTotal, creditTotal decimal.Decimal) {
	debitTotal = decimal.Zero
	creditTotal = decimal.Zero
	for _, line := range lines {
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
	}
	return debitTotal, creditTotal
}

// BalanceDelta is the net effect of one journal entry on one account's three
// balance columns.
type BalanceDelta struct {
	Debit   decimal.Decimal
	Credit  decimal.Decimal
	Current decimal.Decimal // Normal-sign change
}

// PostingPlan is the fully computed, side-effect-free description of what posting
// one journal entry does: the ledger rows to append (running balances filled in)
// and the per-account balance deltas to apply. Building the plan never touches
// storage, so the math is testable in isolation and the repository only persists.
type PostingPlan struct {
	Rows   []domain.LedgerEntry
	Deltas map[string]BalanceDelta
}

// BuildPostingPlan computes ledger rows and balance deltas for a balanced entry.
// accounts must contain every account referenced by the entry's lines, carrying
// the balances in force immediately before this entry. Lines are processed in
// LineNo order so running balances are reproducible.
func BuildPostingPlan(entry domain.JournalEntry, accounts map[string]domain.Account) (*PostingPlan, error) {
	lines := make([]domain.JournalLine, len(entry.Lines))
	copy(lines, entry.Lines)
	sort.Slice(lines, func(i, j int) bool { return lines[i].LineNo < lines[j].LineNo })

	running := make(map[string]decimal.Decimal, len(accounts))
	for id, acc := range accounts {
		running[id] = acc.CurrentBalance
	}

	plan := &PostingPlan{
		Rows:   make([]domain.LedgerEntry, 0, len(lines)),
		Deltas: make(map[string]BalanceDelta),
	}

	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("account %s missing from posting plan input", line.AccountID)
		}
		effect, err := SignedEffect(line.Side(), line.Amount(), acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line.LineNo, err)
		}

		balance := running[line.AccountID].Add(effect)
		running[line.AccountID] = balance

		plan.Rows = append(plan.Rows, domain.LedgerEntry{
			OrganizationID: entry.OrganizationID,
			AccountID:      line.AccountID,
			EntryID:        entry.EntryID,
			EntryNumber:    entry.EntryNumber,
			LineNo:         line.LineNo,
			EntryDate:      entry.EntryDate,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: balance,
		})

		delta := plan.Deltas[line.AccountID]
		delta.Debit = delta.Debit.Add(line.Debit)
		delta.Credit = delta.Credit.Add(line.Credit)
		delta.Current = delta.Current.Add(effect)
		plan.Deltas[line.AccountID] = delta
	}

	return plan, nil
}
