package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService owns the chart of accounts. Balance columns are written only by
// the journal posting path; this service handles metadata and lifecycle.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service.
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer sets the organization authorizer dependency.
func WithAccountAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new account in the organization's chart of accounts.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !domain.SubTypeAllowed(req.AccountType, req.AccountSubType) {
		return nil, fmt.Errorf("%w: subtype %s is not allowed for type %s", apperrors.ErrValidation, req.AccountSubType, req.AccountType)
	}

	// Code must be unique within the organization.
	existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrValidation, req.Code)
	}

	level := 0
	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, parentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, parentID)
			}
			return nil, fmt.Errorf("failed to find parent account: %w", err)
		}
		if parent.Status != domain.AccountActive {
			return nil, fmt.Errorf("%w: parent account %s is not active", apperrors.ErrValidation, parentID)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
		level = parent.Level + 1
	}

	allowTransactions := true
	if req.AllowTransactions != nil {
		allowTransactions = *req.AllowTransactions
	}
	if req.RequireSubAccounts && allowTransactions {
		// A roll-up account cannot also take direct postings.
		return nil, fmt.Errorf("%w: requireSubAccounts and allowTransactions are mutually exclusive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:          uuid.NewString(),
		OrganizationID:     organizationID,
		Code:               req.Code,
		Name:               req.Name,
		AccountType:        req.AccountType,
		AccountSubType:     req.AccountSubType,
		ParentAccountID:    parentID,
		Level:              level,
		Status:             domain.AccountActive,
		AllowTransactions:  allowTransactions,
		RequireSubAccounts: req.RequireSubAccounts,
		Description:        req.Description,
		DebitBalance:       decimal.Zero,
		CreditBalance:      decimal.Zero,
		CurrentBalance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("organization_id", organizationID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, organizationID, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, params dto.ListAccountsParams, userID string) (*dto.ListAccountsResponse, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	accounts, nextToken, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, params.NextToken, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return &dto.ListAccountsResponse{
		Accounts:  dto.ToListAccountResponse(accounts),
		NextToken: nextToken,
	}, nil
}

// UpdateAccount patches account metadata. Changing the type of an account that
// already has postings would invalidate historical ledger semantics and is
// rejected.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status == domain.AccountArchived {
		return nil, fmt.Errorf("%w: account %s is archived", apperrors.ErrInvalidOperation, accountID)
	}

	if req.AccountType != nil && *req.AccountType != account.AccountType {
		hasPostings, err := s.accountRepo.HasPostings(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("failed to check postings for account %s: %w", accountID, err)
		}
		if hasPostings {
			return nil, fmt.Errorf("%w: cannot change type of account %s with existing postings", apperrors.ErrInvalidOperation, accountID)
		}
		if !req.AccountType.Valid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
		}
		account.AccountType = *req.AccountType
	}
	if req.AccountSubType != nil {
		if !domain.SubTypeAllowed(account.AccountType, *req.AccountSubType) {
			return nil, fmt.Errorf("%w: subtype %s is not allowed for type %s", apperrors.ErrValidation, *req.AccountSubType, account.AccountType)
		}
		account.AccountSubType = *req.AccountSubType
	} else if req.AccountType != nil && !domain.SubTypeAllowed(account.AccountType, account.AccountSubType) {
		return nil, fmt.Errorf("%w: existing subtype %s is not allowed for new type %s", apperrors.ErrValidation, account.AccountSubType, account.AccountType)
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.AllowTransactions != nil {
		account.AllowTransactions = *req.AllowTransactions
	}
	if req.RequireSubAccounts != nil {
		account.RequireSubAccounts = *req.RequireSubAccounts
	}
	if req.Status != nil {
		if *req.Status == domain.AccountArchived {
			return nil, fmt.Errorf("%w: use the archive operation to archive an account", apperrors.ErrValidation)
		}
		account.Status = *req.Status
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// ArchiveAccount archives an account. Accounts with a balance or active children
// cannot be archived; accounts are never physically deleted once posted to.
func (s *accountService) ArchiveAccount(ctx context.Context, organizationID, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if account.Status == domain.AccountArchived {
		return fmt.Errorf("%w: account %s is already archived", apperrors.ErrInvalidOperation, accountID)
	}
	if !account.CurrentBalance.IsZero() {
		return fmt.Errorf("%w: account %s has a non-zero balance of %s", apperrors.ErrInvalidOperation, accountID, account.CurrentBalance)
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, organizationID, accountID)
	if err != nil {
		return fmt.Errorf("failed to list child accounts: %w", err)
	}
	for _, child := range children {
		if child.Status == domain.AccountActive {
			return fmt.Errorf("%w: account %s has active child account %s", apperrors.ErrInvalidOperation, accountID, child.AccountID)
		}
	}

	account.Status = domain.AccountArchived
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to archive account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to archive account: %w", err)
	}

	s.LogInfo(ctx, "Account archived", slog.String("account_id", accountID))
	return nil
}

// ResolveForPosting returns the account only if it may receive direct postings.
func (s *accountService) ResolveForPosting(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account %s is %s", apperrors.ErrPostingNotAllowed, account.Code, account.Status)
	}
	if account.RequireSubAccounts {
		return nil, fmt.Errorf("%w: account %s only accepts postings through sub-accounts", apperrors.ErrPostingNotAllowed, account.Code)
	}
	if !account.AllowTransactions {
		return nil, fmt.Errorf("%w: account %s does not allow transactions", apperrors.ErrPostingNotAllowed, account.Code)
	}
	return account, nil
}
