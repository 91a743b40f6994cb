package pgsql

import (
	"context"
	"errors"

	"github.com/bizbooks/bizbooks_backend/internal/apperrors"
	"github.com/bizbooks/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/bizbooks/bizbooks_backend/internal/core/ports/repositories"
	"github.com/bizbooks/bizbooks_backend/internal/models"
	"github.com/bizbooks/bizbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, currency_code, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.CurrencyCode,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization "+organizationID, err)
	}

	org := mapping.ToDomainOrganization(m)
	return &org, nil
}

// FindUserRole returns the caller's role within an organization.
func (r *PgxOrganizationRepository) FindUserRole(ctx context.Context, userID, organizationID string) (domain.OrganizationRole, error) {
	query := `
		SELECT role
		FROM organization_members
		WHERE user_id = $1 AND organization_id = $2;
	`
	var role string
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrForbidden
		}
		return "", apperrors.NewAppError(500, "failed to find role for user "+userID, err)
	}
	return domain.OrganizationRole(role), nil
}

// SaveOrganization persists a new organization and its creator's membership in
// one transaction.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization, creatorRole domain.OrganizationRole) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrganization(org)
	orgQuery := `
		INSERT INTO organizations (
			organization_id, name, currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, orgQuery,
		m.OrganizationID,
		m.Name,
		m.CurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert organization "+m.OrganizationID, err)
	}

	memberQuery := `
		INSERT INTO organization_members (
			organization_id, user_id, role,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, memberQuery,
		m.OrganizationID,
		m.CreatedBy,
		string(creatorRole),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert organization membership", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateOrganization persists organization metadata changes.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)
	query := `
		UPDATE organizations
		SET name = $2, currency_code = $3, is_active = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE organization_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.CurrencyCode,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update organization "+m.OrganizationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
