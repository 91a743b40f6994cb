package repositories

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data.
type OrganizationReader interface {
	// FindOrganizationByID retrieves an organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindUserRole returns the caller's role within an organization, or
	// apperrors.ErrForbidden when the caller has none.
	FindUserRole(ctx context.Context, userID, organizationID string) (domain.OrganizationRole, error)
}

// OrganizationWriter defines write operations for organization data.
type OrganizationWriter interface {
	SaveOrganization(ctx context.Context, org domain.Organization, creatorRole domain.OrganizationRole) error
	UpdateOrganization(ctx context.Context, org domain.Organization) error
}

// OrganizationRepositoryFacade combines all organization repository interfaces.
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
