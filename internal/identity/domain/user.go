package domain

import "time"

// RoleTenantAdmin is the role assigned to the first user of a tenant.
// Further roles are consumed by downstream authorisation, not defined here.
const RoleTenantAdmin = "tenant_admin"

// User belongs to exactly one tenant. Email is unique within the tenant's
// scope; two tenants may each have a user with the same email.
type User struct {
	ID           string
	TenantID     string
	Email        string
	FullName     string
	Role         string
	PasswordHash string // argon2id encoded, never logged or returned in responses
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
