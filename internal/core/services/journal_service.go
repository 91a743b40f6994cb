package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

// journalService is the journal engine: it owns every state transition of a
// journal entry and is the only writer of account balances and ledger rows.
type journalService struct {
	BaseService
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryWithTx
	reconRepo   portsrepo.ReconciliationReader
	reportCache portssvc.ReportCacheSvc

	// orgLocks serializes postings per organization so entry numbers stay
	// gapless and running balances roll forward in one order. Reads do not take
	// this lock.
	orgLocks sync.Map // organizationID -> *sync.Mutex
}

// JournalServiceOption is a functional option for configuring the journal service.
type JournalServiceOption func(*journalService)

// WithJournalAuthorizer sets the organization authorizer dependency.
func WithJournalAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.Authorizer = authorizer
	}
}

// WithReconciliationReader sets the reconciliation reader used to guard
// reversals of matched entries.
func WithReconciliationReader(repo portsrepo.ReconciliationReader) JournalServiceOption {
	return func(s *journalService) {
		s.reconRepo = repo
	}
}

// WithReportCache sets the report cache dropped after every posting, since a
// backdated entry can change any cached historical report.
func WithReportCache(cache portssvc.ReportCacheSvc) JournalServiceOption {
	return func(s *journalService) {
		s.reportCache = cache
	}
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryWithTx, accountSvc portssvc.AccountSvcFacade, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// lockOrganization acquires the posting critical section for an organization and
// returns its release func.
func (s *journalService) lockOrganization(organizationID string) func() {
	muAny, _ := s.orgLocks.LoadOrStore(organizationID, &sync.Mutex{})
	mu := muAny.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateDraftEntry stores a new DRAFT entry. Only shape problems are rejected
// here; balance problems are reported by ValidateEntry and block PostEntry.
func (s *journalService) CreateDraftEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entryType := req.EntryType
	if entryType == "" {
		entryType = domain.EntryStandard
	}
	if entryType == domain.EntryReversing {
		return nil, fmt.Errorf("%w: reversing entries are system-generated via the reverse operation", apperrors.ErrValidation)
	}
	if !entryType.Valid() {
		return nil, fmt.Errorf("%w: unknown entry type %q", apperrors.ErrValidation, entryType)
	}
	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: a journal entry needs at least two lines", apperrors.ErrValidation)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		line := domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			LineNo:    i + 1,
			AccountID: lineReq.AccountID,
			Debit:     lineReq.Debit,
			Credit:    lineReq.Credit,
			Memo:      lineReq.Memo,
		}
		if !line.WellFormed() {
			return nil, fmt.Errorf("%w: line %d must have exactly one positive side", apperrors.ErrValidation, i+1)
		}
		lines[i] = line
	}

	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		EntryDate:      req.EntryDate,
		EntryType:      entryType,
		Status:         domain.EntryDraft,
		Description:    req.Description,
		SourceType:     req.SourceType,
		SourceID:       req.SourceID,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveDraftEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save draft entry", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save draft entry: %w", err)
	}

	s.LogInfo(ctx, "Draft journal entry created",
		slog.String("entry_id", entryID),
		slog.String("organization_id", organizationID))
	return &entry, nil
}

// UpdateDraftEntry replaces a DRAFT entry's date, description or lines.
func (s *journalService) UpdateDraftEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	entry, err := s.loadEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is %s and immutable", apperrors.ErrInvalidOperation, entryID, entry.Status)
	}

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		if len(*req.Lines) < 2 {
			return nil, fmt.Errorf("%w: a journal entry needs at least two lines", apperrors.ErrValidation)
		}
		lines := make([]domain.JournalLine, len(*req.Lines))
		for i, lineReq := range *req.Lines {
			line := domain.JournalLine{
				LineID:    uuid.NewString(),
				EntryID:   entry.EntryID,
				LineNo:    i + 1,
				AccountID: lineReq.AccountID,
				Debit:     lineReq.Debit,
				Credit:    lineReq.Credit,
				Memo:      lineReq.Memo,
			}
			if !line.WellFormed() {
				return nil, fmt.Errorf("%w: line %d must have exactly one positive side", apperrors.ErrValidation, i+1)
			}
			lines[i] = line
		}
		entry.Lines = lines
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateDraftEntry(ctx, *entry); err != nil {
		s.LogError(ctx, err, "Failed to update draft entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update draft entry: %w", err)
	}
	return entry, nil
}

// validate runs the full pre-posting validation without mutating any state.
func (s *journalService) validate(ctx context.Context, entry *domain.JournalEntry) *domain.JournalEntryValidation {
	result := &domain.JournalEntryValidation{}
	result.IsValid = true

	if len(entry.Lines) < 2 {
		result.AddError("entry must have at least two lines")
	}

	seenAccounts := make(map[string]struct{})
	for _, line := range entry.Lines {
		if !line.WellFormed() {
			result.AddError(fmt.Sprintf("line %d must have exactly one positive side", line.LineNo))
			continue
		}
		if _, err := s.accountSvc.ResolveForPosting(ctx, entry.OrganizationID, line.AccountID); err != nil {
			switch {
			case errors.Is(err, apperrors.ErrNotFound):
				result.AddError(fmt.Sprintf("line %d: account %s not found", line.LineNo, line.AccountID))
			case errors.Is(err, apperrors.ErrPostingNotAllowed):
				result.AddError(fmt.Sprintf("line %d: %s", line.LineNo, err.Error()))
			default:
				result.AddError(fmt.Sprintf("line %d: failed to resolve account %s", line.LineNo, line.AccountID))
			}
		}
		seenAccounts[line.AccountID] = struct{}{}
	}

	if len(seenAccounts) < 2 {
		result.AddWarning("all lines post to a single account")
	}
	if entry.EntryDate.After(time.Now().UTC().Add(24 * time.Hour)) {
		result.AddWarning("entry date is in the future")
	}

	debitTotal, creditTotal := accounting.EntryTotals(entry.Lines)
	result.DebitTotal = debitTotal
	result.CreditTotal = creditTotal
	result.Difference = debitTotal.Sub(creditTotal)
	result.IsBalanced = result.Difference.IsZero()
	if !result.IsBalanced {
		result.AddError(fmt.Sprintf("entry does not balance: debits %s, credits %s", debitTotal, creditTotal))
	}

	return result
}

// ValidateEntry checks an entry and reports the result without mutating state.
func (s *journalService) ValidateEntry(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntryValidation, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entry, err := s.loadEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	return s.validate(ctx, entry), nil
}

// PostEntry validates and posts a DRAFT entry. Assigning the entry number,
// appending ledger rows and mutating balances happen as one atomic unit inside
// the organization's posting critical section; partial posting is never
// observable.
func (s *journalService) PostEntry(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	unlock := s.lockOrganization(organizationID)
	defer unlock()

	entry, err := s.loadEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyPosted, entryID)
	}

	validation := s.validate(ctx, entry)
	if !validation.IsValid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(validation.Errors, "; "))
	}

	entry.LastUpdatedAt = time.Now().UTC()
	entry.LastUpdatedBy = userID

	posted, err := s.journalRepo.PostEntry(ctx, *entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}

	s.invalidateReports(ctx, organizationID)
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.Int64("entry_number", posted.EntryNumber),
		slog.String("organization_id", organizationID))
	return posted, nil
}

func (s *journalService) invalidateReports(ctx context.Context, organizationID string) {
	if s.reportCache == nil {
		return
	}
	if err := s.reportCache.InvalidateOrganization(ctx, organizationID); err != nil {
		s.LogWarn(ctx, "Failed to invalidate cached reports",
			slog.String("organization_id", organizationID),
			slog.String("error", err.Error()))
	}
}

// ReverseEntry synthesizes a REVERSING entry with every line's sides swapped and
// posts it through the normal posting path. The original entry's lines are never
// touched; only its status and reversal link change.
func (s *journalService) ReverseEntry(ctx context.Context, organizationID, entryID string, reason string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	unlock := s.lockOrganization(organizationID)
	defer unlock()

	original, err := s.loadEntry(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status == domain.EntryDraft {
		return nil, fmt.Errorf("%w: entry %s is a draft and has nothing to reverse", apperrors.ErrInvalidOperation, entryID)
	}
	if original.Status == domain.EntryReversed || original.ReversalEntryID != nil {
		return nil, fmt.Errorf("%w: entry %s is already reversed", apperrors.ErrInvalidOperation, entryID)
	}
	if original.EntryType == domain.EntryReversing {
		return nil, fmt.Errorf("%w: entry %s is itself a reversal", apperrors.ErrInvalidOperation, entryID)
	}

	if s.reconRepo != nil {
		referenced, err := s.reconRepo.IsJournalEntryReferenced(ctx, entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check reconciliation references for entry %s: %w", entryID, err)
		}
		if referenced {
			return nil, fmt.Errorf("%w: entry %s", apperrors.ErrReferencedByReconciliation, entryID)
		}
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(original.Lines))
	for i, origLine := range original.Lines {
		lines[i] = domain.JournalLine{
			LineID:    uuid.NewString(),
			EntryID:   reversalID,
			LineNo:    origLine.LineNo,
			AccountID: origLine.AccountID,
			Debit:     origLine.Credit,
			Credit:    origLine.Debit,
			Memo:      origLine.Memo,
		}
	}

	description := fmt.Sprintf("Reversal of entry #%d: %s", original.EntryNumber, original.Description)
	if reason != "" {
		description = fmt.Sprintf("%s (%s)", description, reason)
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		OrganizationID:  organizationID,
		EntryDate:       original.EntryDate,
		EntryType:       domain.EntryReversing,
		Status:          domain.EntryDraft,
		Description:     description,
		SourceType:      "REVERSAL",
		SourceID:        original.EntryID,
		ReversedEntryID: &original.EntryID,
		Lines:           lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	validation := s.validate(ctx, &reversal)
	if !validation.IsValid {
		// A posted entry's mirror image should always validate; failing here
		// means the original's accounts changed underneath it.
		return nil, fmt.Errorf("%w: reversal of entry %s does not validate: %s", apperrors.ErrInvalidOperation, entryID, strings.Join(validation.Errors, "; "))
	}

	if err := s.journalRepo.SaveDraftEntry(ctx, reversal); err != nil {
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}
	posted, err := s.journalRepo.PostEntry(ctx, reversal)
	if err != nil {
		s.LogError(ctx, err, "Failed to post reversing entry", slog.String("entry_id", reversalID))
		return nil, fmt.Errorf("failed to post reversing entry: %w", err)
	}
	if err := s.journalRepo.MarkEntryReversed(ctx, original.EntryID, reversalID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to link reversal to original entry",
			slog.String("entry_id", entryID),
			slog.String("reversal_entry_id", reversalID))
		return nil, fmt.Errorf("failed to link reversal: %w", err)
	}

	s.invalidateReports(ctx, organizationID)
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversalID),
		slog.Int64("reversal_entry_number", posted.EntryNumber))
	return posted, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, organizationID, entryID string, userID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.loadEntry(ctx, organizationID, entryID)
}

func (s *journalService) ListEntries(ctx context.Context, organizationID string, params dto.ListJournalEntriesParams, userID string) (*dto.ListJournalEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, limit, params.NextToken, params.IncludeReversals)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return &dto.ListJournalEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// loadEntry fetches an entry with its lines and enforces organization scoping.
// Entries from other organizations are reported as not found.
func (s *journalService) loadEntry(ctx context.Context, organizationID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if entry.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}
