package services

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// LedgerSvcFacade exposes the read-only derived view of the general ledger.
// Responses carry the snapshot time used so repeated queries are reproducible.
type LedgerSvcFacade interface {
	// EntriesForAccount retrieves a restartable, canonically ordered page of
	// ledger rows for an account.
	EntriesForAccount(ctx context.Context, organizationID, accountID string, params dto.LedgerEntriesParams, userID string) (*dto.LedgerEntriesResponse, error)

	// BalanceAsOf returns the account's running balance at or before asOf.
	BalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time, userID string) (*dto.AccountBalanceResponse, error)
}
