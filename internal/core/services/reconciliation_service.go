package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/bizbooks/bizbooks_backend/internal/utils/accounting"
)

// DefaultMatchWindowDays bounds how far apart a bank transaction and a ledger
// row may be dated and still auto-match.
const DefaultMatchWindowDays = 3

// reconciliationService drives bank reconciliation runs. It reads the ledger
// but never writes ledger rows or balances; its only writes are reconciliation
// records and match links.
type reconciliationService struct {
	BaseService
	reconRepo       portsrepo.ReconciliationRepositoryFacade
	ledgerRepo      portsrepo.LedgerReader
	journalRepo     portsrepo.JournalEntryReader
	accountSvc      portssvc.AccountReaderSvc
	matchWindowDays int

	// accountLocks serializes runs per account: two concurrent reconciliations of
	// the same account must not interleave match writes.
	accountLocks sync.Map // accountID -> *sync.Mutex
}

// ReconciliationServiceOption is a functional option for configuring the
// reconciliation service.
type ReconciliationServiceOption func(*reconciliationService)

// WithReconciliationAuthorizer sets the organization authorizer dependency.
func WithReconciliationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.Authorizer = authorizer
	}
}

// WithMatchWindowDays overrides the auto-match date window.
func WithMatchWindowDays(days int) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		if days > 0 {
			s.matchWindowDays = days
		}
	}
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(reconRepo portsrepo.ReconciliationRepositoryFacade, ledgerRepo portsrepo.LedgerReader, journalRepo portsrepo.JournalEntryReader, accountSvc portssvc.AccountReaderSvc, options ...ReconciliationServiceOption) portssvc.ReconciliationSvcFacade {
	svc := &reconciliationService{
		reconRepo:       reconRepo,
		ledgerRepo:      ledgerRepo,
		journalRepo:     journalRepo,
		accountSvc:      accountSvc,
		matchWindowDays: DefaultMatchWindowDays,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) lockAccount(accountID string) func() {
	muAny, _ := s.accountLocks.LoadOrStore(accountID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// StartReconciliation imports a statement batch and opens an IN_PROGRESS
// reconciliation. Only one non-completed reconciliation may exist per account.
func (s *reconciliationService) StartReconciliation(ctx context.Context, organizationID string, req dto.StartReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountSvc.GetAccountByID(ctx, organizationID, req.AccountID, userID)
	if err != nil {
		return nil, err
	}
	if account.AccountSubType != domain.SubTypeBank && account.AccountSubType != domain.SubTypeCash {
		return nil, fmt.Errorf("%w: account %s is %s, reconciliation needs a BANK or CASH account", apperrors.ErrInvalidOperation, req.AccountID, account.AccountSubType)
	}

	unlock := s.lockAccount(req.AccountID)
	defer unlock()

	if existing, err := s.reconRepo.FindActiveByAccount(ctx, organizationID, req.AccountID); err == nil {
		return nil, fmt.Errorf("%w: reconciliation %s for account %s is still open", apperrors.ErrConflict, existing.ReconciliationID, req.AccountID)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check active reconciliations for account %s: %w", req.AccountID, err)
	}

	now := time.Now().UTC()
	reconID := uuid.NewString()

	bankTxns := make([]domain.BankTransaction, len(req.Transactions))
	for i, txnReq := range req.Transactions {
		if !txnReq.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: transaction %d amount must be positive, direction carries the sign", apperrors.ErrValidation, i+1)
		}
		bankTxns[i] = domain.BankTransaction{
			BankTransactionID: uuid.NewString(),
			OrganizationID:    organizationID,
			AccountID:         req.AccountID,
			ReconciliationID:  reconID,
			TransactionDate:   txnReq.TransactionDate,
			Amount:            txnReq.Amount,
			Direction:         txnReq.Direction,
			BankReference:     txnReq.BankReference,
			Counterparty:      txnReq.Counterparty,
			Status:            domain.BankTxnUnmatched,
			CreatedAt:         now,
		}
	}

	recon := domain.BankReconciliation{
		ReconciliationID: reconID,
		OrganizationID:   organizationID,
		AccountID:        req.AccountID,
		StatementDate:    req.StatementDate,
		StartingBalance:  req.StartingBalance,
		StatementBalance: req.StatementBalance,
		Status:           domain.ReconciliationInProgress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.reconRepo.SaveReconciliation(ctx, recon, bankTxns); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation", slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to save reconciliation: %w", err)
	}

	s.LogInfo(ctx, "Reconciliation started",
		slog.String("reconciliation_id", reconID),
		slog.String("account_id", req.AccountID),
		slog.Int("bank_transactions", len(bankTxns)))
	return &recon, nil
}

// GetReconciliation retrieves a reconciliation with its statement lines and both
// unmatched sets.
func (s *reconciliationService) GetReconciliation(ctx context.Context, organizationID, reconciliationID string, userID string) (*dto.ReconciliationDetailResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	recon, err := s.loadReconciliation(ctx, organizationID, reconciliationID)
	if err != nil {
		return nil, err
	}

	bankTxns, err := s.reconRepo.ListBankTransactions(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	matches, err := s.reconRepo.ListMatches(ctx, reconciliationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	bookRows, err := s.ledgerRepo.UnreconciledEntries(ctx, organizationID, recon.AccountID, recon.StatementDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidate ledger rows: %w", err)
	}

	matchedBank := make(map[string]struct{}, len(matches))
	matchedBook := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matchedBank[m.BankTransactionID] = struct{}{}
		matchedBook[m.LedgerEntryID] = struct{}{}
	}

	var unmatchedBank []domain.BankTransaction
	for _, txn := range bankTxns {
		if _, ok := matchedBank[txn.BankTransactionID]; !ok {
			unmatchedBank = append(unmatchedBank, txn)
		}
	}
	var unmatchedBook []domain.LedgerEntry
	for _, row := range bookRows {
		if _, ok := matchedBook[row.LedgerEntryID]; !ok {
			unmatchedBook = append(unmatchedBook, row)
		}
	}

	return &dto.ReconciliationDetailResponse{
		ReconciliationResponse: dto.ToReconciliationResponse(recon),
		BankTransactions:       dto.ToBankTransactionResponses(bankTxns),
		UnmatchedBank:          dto.ToBankTransactionResponses(unmatchedBank),
		UnmatchedBook:          dto.ToLedgerEntryResponses(unmatchedBook),
	}, nil
}

// AutoMatch runs the greedy matcher over the unmatched bank transactions.
// Running it twice on unchanged inputs is a no-op the second time.
func (s *reconciliationService) AutoMatch(ctx context.Context, organizationID, reconciliationID string, userID string) (*dto.AutoMatchResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	recon, unlock, err := s.lockAndLoad(ctx, organizationID, reconciliationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !recon.Status.Open() {
		return nil, fmt.Errorf("%w: reconciliation %s is %s", apperrors.ErrInvalidOperation, reconciliationID, recon.Status)
	}

	bankTxns, matches, bookRows, err := s.loadMatchingState(ctx, recon)
	if err != nil {
		return nil, err
	}

	matchedBook := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matchedBook[m.LedgerEntryID] = struct{}{}
	}
	var candidates []domain.LedgerEntry
	for _, row := range bookRows {
		if _, ok := matchedBook[row.LedgerEntryID]; !ok {
			candidates = append(candidates, row)
		}
	}

	pairs := accounting.MatchStatement(bankTxns, candidates, s.matchWindowDays)

	now := time.Now().UTC()
	resp := &dto.AutoMatchResponse{ReconciliationID: reconciliationID}
	for _, pair := range pairs {
		match := domain.ReconciliationMatch{
			ReconciliationID:  reconciliationID,
			BankTransactionID: pair.BankTransactionID,
			LedgerEntryID:     pair.LedgerEntryID,
			Automatic:         true,
			MatchedAt:         now,
		}
		if err := s.reconRepo.ApplyMatch(ctx, match); err != nil {
			s.LogError(ctx, err, "Failed to record match",
				slog.String("reconciliation_id", reconciliationID),
				slog.String("bank_transaction_id", pair.BankTransactionID))
			return nil, fmt.Errorf("failed to record match: %w", err)
		}
		matches = append(matches, match)
		resp.Matched = append(resp.Matched, dto.MatchPairResponse{
			BankTransactionID: pair.BankTransactionID,
			LedgerEntryID:     pair.LedgerEntryID,
			Automatic:         true,
		})
	}

	updated, err := s.applySummary(ctx, recon, bankTxns, bookRows, matches, userID)
	if err != nil {
		return nil, err
	}
	resp.Summary = dto.ToReconciliationResponse(updated)

	matchedBank := make(map[string]struct{}, len(matches))
	matchedBookNow := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		matchedBank[m.BankTransactionID] = struct{}{}
		matchedBookNow[m.LedgerEntryID] = struct{}{}
	}
	for _, txn := range bankTxns {
		if _, ok := matchedBank[txn.BankTransactionID]; !ok {
			resp.UnmatchedBank++
		}
	}
	for _, row := range bookRows {
		if _, ok := matchedBookNow[row.LedgerEntryID]; !ok {
			resp.UnmatchedBook++
		}
	}

	s.LogInfo(ctx, "Auto-match completed",
		slog.String("reconciliation_id", reconciliationID),
		slog.Int("matched", len(resp.Matched)),
		slog.Int("unmatched_bank", resp.UnmatchedBank),
		slog.Int("unmatched_book", resp.UnmatchedBook))
	return resp, nil
}

// ManualMatch pairs one bank transaction with one ledger row by hand. The row
// must carry the transaction's amount on the corresponding book side; manual
// matching overrides the date window, never the amount.
func (s *reconciliationService) ManualMatch(ctx context.Context, organizationID, reconciliationID string, req dto.ManualMatchRequest, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}
	recon, unlock, err := s.lockAndLoad(ctx, organizationID, reconciliationID)
	if err != nil {
		return err
	}
	defer unlock()

	if !recon.Status.Open() {
		return fmt.Errorf("%w: reconciliation %s is %s", apperrors.ErrInvalidOperation, reconciliationID, recon.Status)
	}

	bankTxns, matches, bookRows, err := s.loadMatchingState(ctx, recon)
	if err != nil {
		return err
	}

	var txn *domain.BankTransaction
	for i := range bankTxns {
		if bankTxns[i].BankTransactionID == req.BankTransactionID {
			txn = &bankTxns[i]
			break
		}
	}
	if txn == nil {
		return fmt.Errorf("%w: bank transaction %s not in reconciliation %s", apperrors.ErrNotFound, req.BankTransactionID, reconciliationID)
	}
	if txn.Status != domain.BankTxnUnmatched {
		return fmt.Errorf("%w: bank transaction %s is already matched", apperrors.ErrInvalidOperation, req.BankTransactionID)
	}

	var row *domain.LedgerEntry
	for i := range bookRows {
		if bookRows[i].LedgerEntryID == req.LedgerEntryID {
			row = &bookRows[i]
			break
		}
	}
	if row == nil {
		return fmt.Errorf("%w: ledger entry %s is not a candidate for account %s", apperrors.ErrNotFound, req.LedgerEntryID, recon.AccountID)
	}
	for _, m := range matches {
		if m.LedgerEntryID == req.LedgerEntryID {
			return fmt.Errorf("%w: ledger entry %s is already matched", apperrors.ErrInvalidOperation, req.LedgerEntryID)
		}
	}

	matched := row.Debit
	if txn.Direction.BookSide() == domain.CreditSide {
		matched = row.Credit
	}
	if !matched.Equal(txn.Amount) {
		return fmt.Errorf("%w: amounts differ: bank %s, book %s", apperrors.ErrValidation, txn.Amount, matched)
	}

	match := domain.ReconciliationMatch{
		ReconciliationID:  reconciliationID,
		BankTransactionID: req.BankTransactionID,
		LedgerEntryID:     req.LedgerEntryID,
		Automatic:         false,
		MatchedAt:         time.Now().UTC(),
	}
	if err := s.reconRepo.ApplyMatch(ctx, match); err != nil {
		return fmt.Errorf("failed to record match: %w", err)
	}
	matches = append(matches, match)

	if _, err := s.applySummary(ctx, recon, bankTxns, bookRows, matches, userID); err != nil {
		return err
	}
	s.LogInfo(ctx, "Manual match recorded",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("bank_transaction_id", req.BankTransactionID),
		slog.String("ledger_entry_id", req.LedgerEntryID))
	return nil
}

// Unmatch undoes one pairing while the reconciliation is still open.
func (s *reconciliationService) Unmatch(ctx context.Context, organizationID, reconciliationID, bankTransactionID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return err
	}
	recon, unlock, err := s.lockAndLoad(ctx, organizationID, reconciliationID)
	if err != nil {
		return err
	}
	defer unlock()

	if !recon.Status.Open() {
		return fmt.Errorf("%w: reconciliation %s is %s", apperrors.ErrInvalidOperation, reconciliationID, recon.Status)
	}

	if err := s.reconRepo.RemoveMatch(ctx, reconciliationID, bankTransactionID); err != nil {
		return fmt.Errorf("failed to remove match for bank transaction %s: %w", bankTransactionID, err)
	}

	bankTxns, matches, bookRows, err := s.loadMatchingState(ctx, recon)
	if err != nil {
		return err
	}
	if _, err := s.applySummary(ctx, recon, bankTxns, bookRows, matches, userID); err != nil {
		return err
	}
	return nil
}

// RecomputeSummary recalculates the reconciliation's figures from stored state.
func (s *reconciliationService) RecomputeSummary(ctx context.Context, organizationID, reconciliationID string, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	recon, unlock, err := s.lockAndLoad(ctx, organizationID, reconciliationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !recon.Status.Open() {
		return nil, fmt.Errorf("%w: reconciliation %s is %s", apperrors.ErrInvalidOperation, reconciliationID, recon.Status)
	}

	bankTxns, matches, bookRows, err := s.loadMatchingState(ctx, recon)
	if err != nil {
		return nil, err
	}
	return s.applySummary(ctx, recon, bankTxns, bookRows, matches, userID)
}

// Complete finishes the reconciliation. A non-zero discrepancy blocks completion
// unless a posted adjustment entry is attached to absorb it; without one the
// reconciliation is parked in DISCREPANCY instead of being discarded.
func (s *reconciliationService) Complete(ctx context.Context, organizationID, reconciliationID string, req dto.CompleteReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}
	recon, unlock, err := s.lockAndLoad(ctx, organizationID, reconciliationID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if !recon.Status.Open() {
		return nil, fmt.Errorf("%w: reconciliation %s is %s", apperrors.ErrInvalidOperation, reconciliationID, recon.Status)
	}

	bankTxns, matches, bookRows, err := s.loadMatchingState(ctx, recon)
	if err != nil {
		return nil, err
	}
	summary := accounting.SummarizeReconciliation(*recon, bankTxns, bookRows, matches)
	recon.ReconciledAmount = summary.ReconciledAmount
	recon.UnmatchedBookAmount = summary.UnmatchedBookAmount
	recon.DiscrepancyAmount = summary.DiscrepancyAmount

	now := time.Now().UTC()
	if !recon.DiscrepancyAmount.IsZero() {
		if req.AdjustmentEntryID == nil {
			recon.Status = domain.ReconciliationDiscrepancy
			recon.LastUpdatedAt = now
			recon.LastUpdatedBy = userID
			if err := s.reconRepo.UpdateReconciliation(ctx, *recon); err != nil {
				return nil, fmt.Errorf("failed to update reconciliation: %w", err)
			}
			return nil, fmt.Errorf("%w: discrepancy of %s remains", apperrors.ErrUnresolvedDiscrepancy, recon.DiscrepancyAmount)
		}

		adjustment, err := s.journalRepo.FindEntryByID(ctx, *req.AdjustmentEntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to find adjustment entry %s: %w", *req.AdjustmentEntryID, err)
		}
		if adjustment.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: adjustment entry %s", apperrors.ErrNotFound, *req.AdjustmentEntryID)
		}
		if adjustment.Status != domain.EntryPosted {
			return nil, fmt.Errorf("%w: adjustment entry %s is %s, must be POSTED", apperrors.ErrValidation, *req.AdjustmentEntryID, adjustment.Status)
		}

		// The adjustment must actually move the reconciled account; an entry
		// posted elsewhere cannot absorb this account's discrepancy.
		adjRows, err := s.ledgerRepo.EntriesForJournalEntry(ctx, *req.AdjustmentEntryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ledger rows for adjustment entry %s: %w", *req.AdjustmentEntryID, err)
		}
		touchesAccount := false
		for _, adjRow := range adjRows {
			if adjRow.AccountID == recon.AccountID {
				touchesAccount = true
				break
			}
		}
		if !touchesAccount {
			return nil, fmt.Errorf("%w: adjustment entry %s does not post to account %s", apperrors.ErrValidation, *req.AdjustmentEntryID, recon.AccountID)
		}
		recon.AdjustmentEntryID = req.AdjustmentEntryID
	}

	recon.Status = domain.ReconciliationCompleted
	recon.CompletedAt = &now
	recon.LastUpdatedAt = now
	recon.LastUpdatedBy = userID
	if err := s.reconRepo.UpdateReconciliation(ctx, *recon); err != nil {
		s.LogError(ctx, err, "Failed to complete reconciliation", slog.String("reconciliation_id", reconciliationID))
		return nil, fmt.Errorf("failed to complete reconciliation: %w", err)
	}

	s.LogInfo(ctx, "Reconciliation completed",
		slog.String("reconciliation_id", reconciliationID),
		slog.String("discrepancy", recon.DiscrepancyAmount.String()),
		slog.Bool("adjusted", recon.AdjustmentEntryID != nil))
	return recon, nil
}

// loadReconciliation fetches a reconciliation and enforces organization scoping.
func (s *reconciliationService) loadReconciliation(ctx context.Context, organizationID, reconciliationID string) (*domain.BankReconciliation, error) {
	recon, err := s.reconRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find reconciliation", slog.String("reconciliation_id", reconciliationID))
		}
		return nil, err
	}
	if recon.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return recon, nil
}

// lockAndLoad acquires the reconciliation's account lock and re-reads the
// record under it. The first read only learns the account; the copy returned to
// the caller is the one read inside the critical section, so a status check
// cannot race a concurrent Complete on the same account.
func (s *reconciliationService) lockAndLoad(ctx context.Context, organizationID, reconciliationID string) (*domain.BankReconciliation, func(), error) {
	recon, err := s.loadReconciliation(ctx, organizationID, reconciliationID)
	if err != nil {
		return nil, nil, err
	}
	unlock := s.lockAccount(recon.AccountID)
	recon, err = s.loadReconciliation(ctx, organizationID, reconciliationID)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return recon, unlock, nil
}

// loadMatchingState reads everything a summary or matcher run needs: statement
// lines, confirmed matches and the book-side candidate rows.
func (s *reconciliationService) loadMatchingState(ctx context.Context, recon *domain.BankReconciliation) ([]domain.BankTransaction, []domain.ReconciliationMatch, []domain.LedgerEntry, error) {
	bankTxns, err := s.reconRepo.ListBankTransactions(ctx, recon.ReconciliationID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	matches, err := s.reconRepo.ListMatches(ctx, recon.ReconciliationID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to list matches: %w", err)
	}
	bookRows, err := s.ledgerRepo.UnreconciledEntries(ctx, recon.OrganizationID, recon.AccountID, recon.StatementDate)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read candidate ledger rows: %w", err)
	}
	return bankTxns, matches, bookRows, nil
}

// applySummary recomputes the figures and persists them on the reconciliation.
// Callers guarantee the reconciliation is open; a parked DISCREPANCY run rejoins
// IN_PROGRESS the moment its figures reconcile again.
func (s *reconciliationService) applySummary(ctx context.Context, recon *domain.BankReconciliation, bankTxns []domain.BankTransaction, bookRows []domain.LedgerEntry, matches []domain.ReconciliationMatch, userID string) (*domain.BankReconciliation, error) {
	summary := accounting.SummarizeReconciliation(*recon, bankTxns, bookRows, matches)
	recon.ReconciledAmount = summary.ReconciledAmount
	recon.UnmatchedBookAmount = summary.UnmatchedBookAmount
	recon.DiscrepancyAmount = summary.DiscrepancyAmount
	if recon.DiscrepancyAmount.IsZero() {
		recon.Status = domain.ReconciliationInProgress
	} else {
		recon.Status = domain.ReconciliationDiscrepancy
	}
	recon.LastUpdatedAt = time.Now().UTC()
	recon.LastUpdatedBy = userID

	if err := s.reconRepo.UpdateReconciliation(ctx, *recon); err != nil {
		s.LogError(ctx, err, "Failed to persist reconciliation summary", slog.String("reconciliation_id", recon.ReconciliationID))
		return nil, fmt.Errorf("failed to persist reconciliation summary: %w", err)
	}
	return recon, nil
}
