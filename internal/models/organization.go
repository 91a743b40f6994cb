package models

// Organization is the tenant row.
type Organization struct {
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	CurrencyCode   string `db:"currency_code"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}

// OrganizationMember links a caller to an organization with a role.
type OrganizationMember struct {
	OrganizationID string `db:"organization_id"`
	UserID         string `db:"user_id"`
	Role           string `db:"role"`
	AuditFields
}
