package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/core/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	mockReconRepo   *MockReconciliationRepository
	mockLedgerRepo  *MockLedgerRepository
	mockJournalRepo *MockJournalRepository
	mockAccountSvc  *MockAccountService
	service         portssvc.ReconciliationSvcFacade

	orgID       string
	userID      string
	bankAccount domain.Account
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.mockReconRepo = new(MockReconciliationRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewReconciliationService(
		suite.mockReconRepo,
		suite.mockLedgerRepo,
		suite.mockJournalRepo,
		suite.mockAccountSvc,
	)

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.bankAccount = domain.Account{
		AccountID:         uuid.NewString(),
		OrganizationID:    suite.orgID,
		Code:              "1010",
		AccountType:       domain.Asset,
		AccountSubType:    domain.SubTypeBank,
		Status:            domain.AccountActive,
		AllowTransactions: true,
	}
}

func (suite *ReconciliationServiceTestSuite) statementDay(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

// inProgressRecon has a 1000.00 starting balance; tests pick the statement
// balance to steer the discrepancy.
func (suite *ReconciliationServiceTestSuite) inProgressRecon(statementBalance decimal.Decimal) *domain.BankReconciliation {
	return &domain.BankReconciliation{
		ReconciliationID: uuid.NewString(),
		OrganizationID:   suite.orgID,
		AccountID:        suite.bankAccount.AccountID,
		StatementDate:    suite.statementDay(30),
		StartingBalance:  decimal.NewFromInt(1000),
		StatementBalance: statementBalance,
		Status:           domain.ReconciliationInProgress,
	}
}

func (suite *ReconciliationServiceTestSuite) creditTxn(reconID string, d int, amount int64) domain.BankTransaction {
	return domain.BankTransaction{
		BankTransactionID: uuid.NewString(),
		OrganizationID:    suite.orgID,
		AccountID:         suite.bankAccount.AccountID,
		ReconciliationID:  reconID,
		TransactionDate:   suite.statementDay(d),
		Amount:            decimal.NewFromInt(amount),
		Direction:         domain.BankCredit,
		Status:            domain.BankTxnUnmatched,
	}
}

func (suite *ReconciliationServiceTestSuite) bookDebitRow(d int, amount int64) domain.LedgerEntry {
	return domain.LedgerEntry{
		LedgerEntryID:  uuid.NewString(),
		OrganizationID: suite.orgID,
		AccountID:      suite.bankAccount.AccountID,
		EntryDate:      suite.statementDay(d),
		Debit:          decimal.NewFromInt(amount),
		Credit:         decimal.Zero,
	}
}

// expectState wires the stored reconciliation state. The record itself may be
// read more than once per operation, since mutating operations re-read it under
// the account lock.
func (suite *ReconciliationServiceTestSuite) expectState(recon *domain.BankReconciliation, txns []domain.BankTransaction, matches []domain.ReconciliationMatch, rows []domain.LedgerEntry) {
	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(recon, nil)
	suite.mockReconRepo.On("ListBankTransactions", mock.Anything, recon.ReconciliationID).Return(txns, nil)
	suite.mockReconRepo.On("ListMatches", mock.Anything, recon.ReconciliationID).Return(matches, nil)
	suite.mockLedgerRepo.On("UnreconciledEntries", mock.Anything, suite.orgID, recon.AccountID, recon.StatementDate).Return(rows, nil)
}

// --- StartReconciliation ---

func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_Success() {
	ctx := context.Background()
	req := dto.StartReconciliationRequest{
		AccountID:        suite.bankAccount.AccountID,
		StatementDate:    suite.statementDay(30),
		StartingBalance:  decimal.NewFromInt(1000),
		StatementBalance: decimal.NewFromInt(1200),
		Transactions: []dto.BankTransactionRequest{
			{TransactionDate: suite.statementDay(10), Amount: decimal.NewFromInt(200), Direction: domain.BankCredit, BankReference: "TXN-001"},
		},
	}

	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.orgID, suite.bankAccount.AccountID, suite.userID).Return(&suite.bankAccount, nil).Once()
	suite.mockReconRepo.On("FindActiveByAccount", ctx, suite.orgID, suite.bankAccount.AccountID).Return(nil, apperrors.ErrNotFound).Once()

	var savedTxns []domain.BankTransaction
	suite.mockReconRepo.On("SaveReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation"), mock.AnythingOfType("[]domain.BankTransaction")).
		Run(func(args mock.Arguments) {
			savedTxns = args.Get(2).([]domain.BankTransaction)
		}).Return(nil).Once()

	recon, err := suite.service.StartReconciliation(ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(recon)
	suite.Equal(domain.ReconciliationInProgress, recon.Status)
	suite.Require().Len(savedTxns, 1)
	suite.Equal(recon.ReconciliationID, savedTxns[0].ReconciliationID)
	suite.Equal(domain.BankTxnUnmatched, savedTxns[0].Status)
	suite.NotEmpty(savedTxns[0].BankTransactionID)

	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_NonBankAccount() {
	ctx := context.Background()
	account := suite.bankAccount
	account.AccountSubType = domain.SubTypeAccountsReceivable
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.orgID, account.AccountID, suite.userID).Return(&account, nil).Once()

	_, err := suite.service.StartReconciliation(ctx, suite.orgID, dto.StartReconciliationRequest{
		AccountID:     account.AccountID,
		StatementDate: suite.statementDay(30),
		Transactions:  []dto.BankTransactionRequest{{TransactionDate: suite.statementDay(10), Amount: decimal.NewFromInt(10), Direction: domain.BankDebit, BankReference: "TXN-001"}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_OpenRunConflicts() {
	ctx := context.Background()
	existing := suite.inProgressRecon(decimal.NewFromInt(1200))
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.orgID, suite.bankAccount.AccountID, suite.userID).Return(&suite.bankAccount, nil).Once()
	suite.mockReconRepo.On("FindActiveByAccount", ctx, suite.orgID, suite.bankAccount.AccountID).Return(existing, nil).Once()

	_, err := suite.service.StartReconciliation(ctx, suite.orgID, dto.StartReconciliationRequest{
		AccountID:     suite.bankAccount.AccountID,
		StatementDate: suite.statementDay(30),
		Transactions:  []dto.BankTransactionRequest{{TransactionDate: suite.statementDay(10), Amount: decimal.NewFromInt(10), Direction: domain.BankDebit, BankReference: "TXN-001"}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReconciliationServiceTestSuite) TestStartReconciliation_NonPositiveAmount() {
	ctx := context.Background()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.orgID, suite.bankAccount.AccountID, suite.userID).Return(&suite.bankAccount, nil).Once()
	suite.mockReconRepo.On("FindActiveByAccount", ctx, suite.orgID, suite.bankAccount.AccountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.StartReconciliation(ctx, suite.orgID, dto.StartReconciliationRequest{
		AccountID:     suite.bankAccount.AccountID,
		StatementDate: suite.statementDay(30),
		Transactions:  []dto.BankTransactionRequest{{TransactionDate: suite.statementDay(10), Amount: decimal.NewFromInt(-5), Direction: domain.BankDebit, BankReference: "TXN-001"}},
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "SaveReconciliation", mock.Anything, mock.Anything, mock.Anything)
}

// --- AutoMatch ---

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_PairsAndUpdatesSummary() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 200)
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	var applied domain.ReconciliationMatch
	suite.mockReconRepo.On("ApplyMatch", ctx, mock.AnythingOfType("domain.ReconciliationMatch")).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(domain.ReconciliationMatch)
		}).Return(nil).Once()

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Matched, 1)
	suite.Equal(txn.BankTransactionID, resp.Matched[0].BankTransactionID)
	suite.Equal(row.LedgerEntryID, resp.Matched[0].LedgerEntryID)
	suite.True(resp.Matched[0].Automatic)
	suite.Zero(resp.UnmatchedBank)
	suite.Zero(resp.UnmatchedBook)

	suite.True(applied.Automatic)
	suite.True(decimal.NewFromInt(200).Equal(updated.ReconciledAmount), "got %s", updated.ReconciledAmount)
	suite.True(updated.UnmatchedBookAmount.IsZero())
	suite.True(updated.DiscrepancyAmount.IsZero())

	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_SecondRunIsNoOp() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
		Automatic:         true,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(resp.Matched)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "ApplyMatch", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_CompletedRunRejected() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.Status = domain.ReconciliationCompleted
	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(recon, nil)

	_, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_OtherOrganizationIsNotFound() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.OrganizationID = uuid.NewString()
	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(recon, nil).Once()

	_, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ManualMatch ---

func (suite *ReconciliationServiceTestSuite) TestManualMatch_OverridesDateWindow() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 1, 200)
	row := suite.bookDebitRow(28, 200) // far outside any auto-match window
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	var applied domain.ReconciliationMatch
	suite.mockReconRepo.On("ApplyMatch", ctx, mock.AnythingOfType("domain.ReconciliationMatch")).
		Run(func(args mock.Arguments) {
			applied = args.Get(1).(domain.ReconciliationMatch)
		}).Return(nil).Once()
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).Return(nil).Once()

	err := suite.service.ManualMatch(ctx, suite.orgID, recon.ReconciliationID, dto.ManualMatchRequest{
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.False(applied.Automatic)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_AmountMismatch() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 150)
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	err := suite.service.ManualMatch(ctx, suite.orgID, recon.ReconciliationID, dto.ManualMatchRequest{
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "ApplyMatch", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_UnknownTransaction() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	row := suite.bookDebitRow(10, 200)
	suite.expectState(recon, []domain.BankTransaction{}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	err := suite.service.ManualMatch(ctx, suite.orgID, recon.ReconciliationID, dto.ManualMatchRequest{
		BankTransactionID: uuid.NewString(),
		LedgerEntryID:     row.LedgerEntryID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReconciliationServiceTestSuite) TestManualMatch_LedgerRowAlreadyClaimed() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	matchedTxn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	matchedTxn.Status = domain.BankTxnMatched
	freeTxn := suite.creditTxn(recon.ReconciliationID, 11, 200)
	row := suite.bookDebitRow(10, 200)
	existing := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: matchedTxn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{matchedTxn, freeTxn}, []domain.ReconciliationMatch{existing}, []domain.LedgerEntry{row})

	err := suite.service.ManualMatch(ctx, suite.orgID, recon.ReconciliationID, dto.ManualMatchRequest{
		BankTransactionID: freeTxn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
}

// --- Unmatch ---

func (suite *ReconciliationServiceTestSuite) TestUnmatch_RemovesAndRecomputes() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 200)
	suite.mockReconRepo.On("RemoveMatch", ctx, recon.ReconciliationID, txn.BankTransactionID).Return(nil).Once()
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	err := suite.service.Unmatch(ctx, suite.orgID, recon.ReconciliationID, txn.BankTransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.ReconciledAmount.IsZero(), "nothing is matched after the unmatch")
	suite.True(decimal.NewFromInt(200).Equal(updated.UnmatchedBookAmount))
	suite.mockReconRepo.AssertExpectations(suite.T())
}

// --- Complete ---

func (suite *ReconciliationServiceTestSuite) TestComplete_ZeroDiscrepancy() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	result, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationCompleted, result.Status)
	suite.Require().NotNil(result.CompletedAt)
	suite.Equal(domain.ReconciliationCompleted, updated.Status)
	suite.True(updated.DiscrepancyAmount.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestComplete_DiscrepancyWithoutAdjustment() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1300)) // 100 unexplained
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	_, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnresolvedDiscrepancy)
	suite.Equal(domain.ReconciliationDiscrepancy, updated.Status, "the run is parked, not discarded")
	suite.True(decimal.NewFromInt(100).Equal(updated.DiscrepancyAmount), "got %s", updated.DiscrepancyAmount)
}

func (suite *ReconciliationServiceTestSuite) TestComplete_DiscrepancyWithPostedAdjustment() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1300))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})

	adjustment := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		Status:         domain.EntryPosted,
		EntryNumber:    9,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, adjustment.EntryID).Return(adjustment, nil).Once()
	suite.mockLedgerRepo.On("EntriesForJournalEntry", ctx, adjustment.EntryID).
		Return([]domain.LedgerEntry{{
			LedgerEntryID:  uuid.NewString(),
			OrganizationID: suite.orgID,
			AccountID:      suite.bankAccount.AccountID,
			Debit:          decimal.NewFromInt(100),
		}}, nil).Once()

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	result, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{
		AdjustmentEntryID: &adjustment.EntryID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationCompleted, result.Status)
	suite.Require().NotNil(updated.AdjustmentEntryID)
	suite.Equal(adjustment.EntryID, *updated.AdjustmentEntryID)
}

// An adjustment posted to some other account cannot absorb this account's
// discrepancy.
func (suite *ReconciliationServiceTestSuite) TestComplete_AdjustmentMustTouchReconciledAccount() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1300))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})

	adjustment := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		Status:         domain.EntryPosted,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, adjustment.EntryID).Return(adjustment, nil).Once()
	suite.mockLedgerRepo.On("EntriesForJournalEntry", ctx, adjustment.EntryID).
		Return([]domain.LedgerEntry{{
			LedgerEntryID:  uuid.NewString(),
			OrganizationID: suite.orgID,
			AccountID:      uuid.NewString(),
			Debit:          decimal.NewFromInt(100),
		}}, nil).Once()

	_, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{
		AdjustmentEntryID: &adjustment.EntryID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "UpdateReconciliation", mock.Anything, mock.Anything)
}

func (suite *ReconciliationServiceTestSuite) TestComplete_DraftAdjustmentRejected() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1300))
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})

	adjustment := &domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.orgID,
		Status:         domain.EntryDraft,
	}
	suite.mockJournalRepo.On("FindEntryByID", ctx, adjustment.EntryID).Return(adjustment, nil).Once()

	_, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{
		AdjustmentEntryID: &adjustment.EntryID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestComplete_FromDiscrepancyState() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.Status = domain.ReconciliationDiscrepancy
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	txn.Status = domain.BankTxnMatched
	row := suite.bookDebitRow(10, 200)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{row})
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).Return(nil).Once()

	result, err := suite.service.Complete(ctx, suite.orgID, recon.ReconciliationID, dto.CompleteReconciliationRequest{}, suite.userID)

	suite.Require().NoError(err, "a parked run completes once the figures line up")
	suite.Equal(domain.ReconciliationCompleted, result.Status)
}

// The status check must run against the record as read under the account lock:
// a completion that lands between the first read and the lock acquisition wins,
// and the matcher must not touch the completed run.
func (suite *ReconciliationServiceTestSuite) TestAutoMatch_CompletionWinsTheLock() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	completed := *recon
	completed.Status = domain.ReconciliationCompleted

	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(recon, nil).Once()
	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(&completed, nil).Once()

	_, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "ApplyMatch", mock.Anything, mock.Anything)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "UpdateReconciliation", mock.Anything, mock.Anything)
	suite.mockReconRepo.AssertExpectations(suite.T())
}

// --- Parked runs ---

// A run parked in DISCREPANCY is still workable: a corrected pairing brings it
// back to IN_PROGRESS once the figures reconcile.
func (suite *ReconciliationServiceTestSuite) TestManualMatch_RepairsParkedRun() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.Status = domain.ReconciliationDiscrepancy
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 200)
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	suite.mockReconRepo.On("ApplyMatch", ctx, mock.AnythingOfType("domain.ReconciliationMatch")).Return(nil).Once()

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	err := suite.service.ManualMatch(ctx, suite.orgID, recon.ReconciliationID, dto.ManualMatchRequest{
		BankTransactionID: txn.BankTransactionID,
		LedgerEntryID:     row.LedgerEntryID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationInProgress, updated.Status, "a repaired run leaves the parked state")
	suite.True(updated.DiscrepancyAmount.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestAutoMatch_RunsOnParkedRun() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.Status = domain.ReconciliationDiscrepancy
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 200)
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})
	suite.mockReconRepo.On("ApplyMatch", ctx, mock.AnythingOfType("domain.ReconciliationMatch")).Return(nil).Once()
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).Return(nil).Once()

	resp, err := suite.service.AutoMatch(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(resp.Matched, 1)
}

func (suite *ReconciliationServiceTestSuite) TestUnmatch_AllowedOnParkedRun() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1300))
	recon.Status = domain.ReconciliationDiscrepancy
	txn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	row := suite.bookDebitRow(10, 200)
	suite.mockReconRepo.On("RemoveMatch", ctx, recon.ReconciliationID, txn.BankTransactionID).Return(nil).Once()
	suite.expectState(recon, []domain.BankTransaction{txn}, []domain.ReconciliationMatch{}, []domain.LedgerEntry{row})

	var updated domain.BankReconciliation
	suite.mockReconRepo.On("UpdateReconciliation", ctx, mock.AnythingOfType("domain.BankReconciliation")).
		Run(func(args mock.Arguments) {
			updated = args.Get(1).(domain.BankReconciliation)
		}).Return(nil).Once()

	err := suite.service.Unmatch(ctx, suite.orgID, recon.ReconciliationID, txn.BankTransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.ReconciliationDiscrepancy, updated.Status, "the figures are still off")
	suite.True(decimal.NewFromInt(100).Equal(updated.DiscrepancyAmount), "got %s", updated.DiscrepancyAmount)
}

// --- RecomputeSummary ---

func (suite *ReconciliationServiceTestSuite) TestRecomputeSummary_CompletedRunRejected() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	recon.Status = domain.ReconciliationCompleted
	suite.mockReconRepo.On("FindReconciliationByID", mock.Anything, recon.ReconciliationID).Return(recon, nil)

	_, err := suite.service.RecomputeSummary(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidOperation)
	suite.mockReconRepo.AssertNotCalled(suite.T(), "UpdateReconciliation", mock.Anything, mock.Anything)
}

// --- GetReconciliation ---

func (suite *ReconciliationServiceTestSuite) TestGetReconciliation_SplitsUnmatchedSets() {
	ctx := context.Background()
	recon := suite.inProgressRecon(decimal.NewFromInt(1200))
	matchedTxn := suite.creditTxn(recon.ReconciliationID, 10, 200)
	matchedTxn.Status = domain.BankTxnMatched
	openTxn := suite.creditTxn(recon.ReconciliationID, 12, 75)
	matchedRow := suite.bookDebitRow(10, 200)
	openRow := suite.bookDebitRow(14, 30)
	match := domain.ReconciliationMatch{
		ReconciliationID:  recon.ReconciliationID,
		BankTransactionID: matchedTxn.BankTransactionID,
		LedgerEntryID:     matchedRow.LedgerEntryID,
	}
	suite.expectState(recon, []domain.BankTransaction{matchedTxn, openTxn}, []domain.ReconciliationMatch{match}, []domain.LedgerEntry{matchedRow, openRow})

	detail, err := suite.service.GetReconciliation(ctx, suite.orgID, recon.ReconciliationID, suite.userID)

	suite.Require().NoError(err)
	suite.Len(detail.BankTransactions, 2)
	suite.Require().Len(detail.UnmatchedBank, 1)
	suite.Equal(openTxn.BankTransactionID, detail.UnmatchedBank[0].BankTransactionID)
	suite.Require().Len(detail.UnmatchedBook, 1)
	suite.Equal(openRow.LedgerEntryID, detail.UnmatchedBook[0].LedgerEntryID)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
