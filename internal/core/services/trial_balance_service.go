package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// trialBalanceService generates trial balance reports from ledger aggregates.
// It never mutates accounting state. An unbalanced report means the posting
// engine broke its own invariant, so the service halts further generation for
// that organization until the hold is cleared.
type trialBalanceService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	cache         portssvc.ReportCacheSvc

	holds sync.Map // organizationID -> string (defect description)
}

// TrialBalanceServiceOption is a functional option for configuring the trial
// balance service.
type TrialBalanceServiceOption func(*trialBalanceService)

// WithTrialBalanceAuthorizer sets the organization authorizer dependency.
func WithTrialBalanceAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) TrialBalanceServiceOption {
	return func(s *trialBalanceService) {
		s.Authorizer = authorizer
	}
}

// WithTrialBalanceCache sets the report cache. Without one every request hits
// the database.
func WithTrialBalanceCache(cache portssvc.ReportCacheSvc) TrialBalanceServiceOption {
	return func(s *trialBalanceService) {
		s.cache = cache
	}
}

// NewTrialBalanceService creates a new trial balance service.
func NewTrialBalanceService(reportingRepo portsrepo.ReportingRepository, options ...TrialBalanceServiceOption) portssvc.TrialBalanceSvcFacade {
	svc := &trialBalanceService{reportingRepo: reportingRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

// Generate builds the trial balance as of the requested date. Every account in
// the chart appears, including zero-balance ones, so two reports over the same
// chart are structurally comparable.
func (s *trialBalanceService) Generate(ctx context.Context, organizationID string, params dto.TrialBalanceParams, userID string) (*domain.TrialBalanceReport, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	if reason, held := s.holds.Load(organizationID); held {
		return nil, fmt.Errorf("%w: generation halted: %s", apperrors.ErrLedgerIntegrity, reason.(string))
	}

	asOf := params.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	if s.cache != nil {
		cached, err := s.cache.GetTrialBalance(ctx, organizationID, asOf, params.IncludeInactive)
		if err != nil {
			s.LogWarn(ctx, "Trial balance cache read failed",
				slog.String("organization_id", organizationID),
				slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	rows, err := s.reportingRepo.GetTrialBalanceRows(ctx, organizationID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance rows", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to aggregate trial balance: %w", err)
	}

	report := &domain.TrialBalanceReport{
		OrganizationID: organizationID,
		AsOf:           asOf,
		GeneratedAt:    time.Now().UTC(),
		Rows:           rows,
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		switch row.AccountType.NormalSide() {
		case domain.DebitSide:
			row.NetBalance = row.DebitBalance.Sub(row.CreditBalance)
		default:
			row.NetBalance = row.CreditBalance.Sub(row.DebitBalance)
		}
		report.TotalDebit = report.TotalDebit.Add(row.DebitBalance)
		report.TotalCredit = report.TotalCredit.Add(row.CreditBalance)
	}
	report.IsBalanced = report.TotalDebit.Equal(report.TotalCredit)

	// The totals and the balance check always cover the whole chart: an inactive
	// account can still carry balances, and hiding it must not make a sound
	// ledger look broken or a broken one look sound.
	if !params.IncludeInactive {
		activeRows := make([]domain.TrialBalanceRow, 0, len(report.Rows))
		for _, row := range report.Rows {
			if row.AccountStatus == domain.AccountActive {
				activeRows = append(activeRows, row)
			}
		}
		report.Rows = activeRows
	}

	if !report.IsBalanced {
		reason := fmt.Sprintf("trial balance as of %s: total debits %s != total credits %s",
			asOf.Format("2006-01-02"), report.TotalDebit, report.TotalCredit)
		s.holds.Store(organizationID, reason)
		s.LogError(ctx, apperrors.ErrLedgerIntegrity, "Trial balance does not balance",
			slog.String("organization_id", organizationID),
			slog.String("total_debit", report.TotalDebit.String()),
			slog.String("total_credit", report.TotalCredit.String()))
		return nil, fmt.Errorf("%w: %s", apperrors.ErrLedgerIntegrity, reason)
	}

	if s.cache != nil {
		if err := s.cache.SetTrialBalance(ctx, report, params.IncludeInactive); err != nil {
			s.LogWarn(ctx, "Trial balance cache write failed",
				slog.String("organization_id", organizationID),
				slog.String("error", err.Error()))
		}
	}
	return report, nil
}

// ClearIntegrityHold re-enables generation after the underlying defect is
// resolved. Admin only.
func (s *trialBalanceService) ClearIntegrityHold(ctx context.Context, organizationID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, held := s.holds.LoadAndDelete(organizationID); !held {
		return fmt.Errorf("%w: no integrity hold for organization %s", apperrors.ErrInvalidOperation, organizationID)
	}
	s.LogInfo(ctx, "Trial balance integrity hold cleared", slog.String("organization_id", organizationID))
	return nil
}
