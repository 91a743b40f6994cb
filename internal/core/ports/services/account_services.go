package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, organizationID, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated account list.
	ListAccounts(ctx context.Context, organizationID string, params dto.ListAccountsParams, userID string) (*dto.ListAccountsResponse, error)
}

// AccountWriterSvc defines write operations for the chart of accounts.
type AccountWriterSvc interface {
	// CreateAccount registers a new account with zero balances.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount patches account metadata. Changing the type of an account
	// that already has postings fails with apperrors.ErrInvalidOperation.
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// ArchiveAccount archives an account with no balance and no active children.
	ArchiveAccount(ctx context.Context, organizationID, accountID string, userID string) error
}

// PostingResolverSvc is the journal engine's view of the registry.
type PostingResolverSvc interface {
	// ResolveForPosting returns the account only when it may receive direct
	// postings; otherwise fails with apperrors.ErrPostingNotAllowed.
	ResolveForPosting(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	PostingResolverSvc
}
