package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// ReportCacheSvc caches generated reports. A nil implementation is valid;
// callers must tolerate its absence.
type ReportCacheSvc interface {
	// GetTrialBalance returns the cached report or (nil, nil) on a miss.
	GetTrialBalance(ctx context.Context, organizationID string, asOf time.Time, includeInactive bool) (*domain.TrialBalanceReport, error)

	// SetTrialBalance stores a report for later retrieval.
	SetTrialBalance(ctx context.Context, report *domain.TrialBalanceReport, includeInactive bool) error

	// InvalidateOrganization drops every cached report for an organization.
	InvalidateOrganization(ctx context.Context, organizationID string) error
}

// TrialBalanceSvcFacade generates trial balance reports.
// An unbalanced report is apperrors.ErrLedgerIntegrity: a ledger-engine defect,
// not a user error. Once raised, further generation for that organization is
// refused until the hold is explicitly cleared.
type TrialBalanceSvcFacade interface {
	Generate(ctx context.Context, organizationID string, params dto.TrialBalanceParams, userID string) (*domain.TrialBalanceReport, error)

	// ClearIntegrityHold re-enables generation after the defect is resolved.
	ClearIntegrityHold(ctx context.Context, organizationID string, userID string) error
}
