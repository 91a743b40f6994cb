package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbooks/bizbooks_backend/internal/core/ports/services"
	"github.com/bizbooks/bizbooks_backend/internal/middleware"
)

// organizationService resolves organizations and evaluates the externally issued
// capability assertion. It performs no authentication; the middleware has already
// verified the assertion's signature.
type organizationService struct {
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{orgRepo: orgRepo}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization %s: %w", organizationID, err)
	}
	return org, nil
}

// AuthorizeUserAction checks the caller holds at least the required role in the
// organization.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, required domain.OrganizationRole) error {
	role, err := s.orgRepo.FindUserRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrForbidden) {
			return fmt.Errorf("%w: no access to organization %s", apperrors.ErrForbidden, organizationID)
		}
		return fmt.Errorf("failed to resolve role for organization %s: %w", organizationID, err)
	}
	if !role.Allows(required) {
		middleware.GetLoggerFromCtx(ctx).Warn("Insufficient role for action",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("role", string(role)),
			slog.String("required", string(required)))
		return fmt.Errorf("%w: requires %s", apperrors.ErrForbidden, required)
	}
	return nil
}
