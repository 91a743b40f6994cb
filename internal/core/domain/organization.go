package domain

// Organization is the tenant boundary. Every account, journal entry, ledger row and
// reconciliation belongs to exactly one organization, and every read or write is
// scoped by organization id.
type Organization struct {
	OrganizationID string `json:"organizationID"` // Primary key (UUID)
	Name           string `json:"name"`
	CurrencyCode   string `json:"currencyCode"` // Single bookkeeping currency per organization
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// OrganizationRole defines the access level a caller's assertion grants for an
// organization. The assertion itself is issued by an external collaborator; this
// core only checks the role it names.
type OrganizationRole string

const (
	RoleAdmin    OrganizationRole = "ADMIN"
	RoleMember   OrganizationRole = "MEMBER"
	RoleReadOnly OrganizationRole = "READONLY"
)

// Allows reports whether a caller holding this role may act at the required level.
func (r OrganizationRole) Allows(required OrganizationRole) bool {
	rank := map[OrganizationRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	return rank[r] >= rank[required]
}
