package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// ReconciliationSvcFacade drives bank reconciliation runs.
// State machine per reconciliation: PENDING -> IN_PROGRESS -> {COMPLETED |
// DISCREPANCY}. Runs for the same account are mutually exclusive. The matcher
// reads the ledger but never mutates balances or ledger rows.
type ReconciliationSvcFacade interface {
	// StartReconciliation imports a statement batch and opens an IN_PROGRESS
	// reconciliation for the account.
	StartReconciliation(ctx context.Context, organizationID string, req dto.StartReconciliationRequest, userID string) (*domain.BankReconciliation, error)

	// GetReconciliation retrieves a reconciliation with its summary figures.
	GetReconciliation(ctx context.Context, organizationID, reconciliationID string, userID string) (*dto.ReconciliationDetailResponse, error)

	// AutoMatch runs the deterministic greedy matcher over the unmatched bank
	// transactions. Running it twice on unchanged inputs produces the identical
	// match set.
	AutoMatch(ctx context.Context, organizationID, reconciliationID string, userID string) (*dto.AutoMatchResponse, error)

	// ManualMatch pairs a bank transaction with a ledger row, overriding the
	// automatic result. Allowed only while IN_PROGRESS.
	ManualMatch(ctx context.Context, organizationID, reconciliationID string, req dto.ManualMatchRequest, userID string) error

	// Unmatch undoes a pairing. Allowed only while IN_PROGRESS.
	Unmatch(ctx context.Context, organizationID, reconciliationID, bankTransactionID string, userID string) error

	// RecomputeSummary recalculates reconciled and discrepancy amounts and
	// updates the status accordingly.
	RecomputeSummary(ctx context.Context, organizationID, reconciliationID string, userID string) (*domain.BankReconciliation, error)

	// Complete finishes the reconciliation. Fails with
	// apperrors.ErrUnresolvedDiscrepancy unless the discrepancy is zero or an
	// adjustment entry has been attached.
	Complete(ctx context.Context, organizationID, reconciliationID string, req dto.CompleteReconciliationRequest, userID string) (*domain.BankReconciliation, error)
}
