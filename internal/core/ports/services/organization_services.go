package services

import (
	"context"

	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
)

// OrganizationAuthorizerSvc checks the externally supplied "permitted to act for
// organization X" assertion against a required role. The ledger core trusts the
// assertion and performs no authentication of its own.
type OrganizationAuthorizerSvc interface {
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, required domain.OrganizationRole) error
}

// OrganizationReaderSvc defines read operations for organizations.
type OrganizationReaderSvc interface {
	GetOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationSvcFacade combines organization service interfaces.
type OrganizationSvcFacade interface {
	OrganizationAuthorizerSvc
	OrganizationReaderSvc
}
