package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
)

// ledgerService serves read-only views over the append-only general ledger.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	accountSvc portssvc.AccountReaderSvc
}

// LedgerServiceOption is a functional option for configuring the ledger service.
type LedgerServiceOption func(*ledgerService)

// WithLedgerAuthorizer sets the organization authorizer dependency.
func WithLedgerAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) LedgerServiceOption {
	return func(s *ledgerService) {
		s.Authorizer = authorizer
	}
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader, accountSvc portssvc.AccountReaderSvc, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: ledgerRepo,
		accountSvc: accountSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// EntriesForAccount pages through an account's ledger rows in canonical order.
func (s *ledgerService) EntriesForAccount(ctx context.Context, organizationID, accountID string, params dto.LedgerEntriesParams, userID string) (*dto.LedgerEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID, userID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	rows, nextToken, err := s.ledgerRepo.EntriesForAccount(ctx, organizationID, accountID, params.From, params.To, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to read ledger rows", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to read ledger for account %s: %w", accountID, err)
	}

	return &dto.LedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(rows),
		NextToken: nextToken,
		AsOf:      time.Now().UTC(),
	}, nil
}

// BalanceAsOf returns the account's running balance at or before asOf, zero when
// the account has no ledger activity in range.
func (s *ledgerService) BalanceAsOf(ctx context.Context, organizationID, accountID string, asOf time.Time, userID string) (*dto.AccountBalanceResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if _, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID, userID); err != nil {
		return nil, err
	}

	balance, err := s.ledgerRepo.BalanceAsOf(ctx, organizationID, accountID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute balance for account %s: %w", accountID, err)
	}

	return &dto.AccountBalanceResponse{
		AccountID: accountID,
		AsOf:      asOf,
		Balance:   balance,
	}, nil
}
