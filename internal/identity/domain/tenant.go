package domain

import "time"

// TenantStatus gates whether a tenant's users may log in.
type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

// Default quota values for newly provisioned tenants on the free plan.
// The quotas are recorded at creation but enforcement belongs to downstream
// consumers, not this service.
const (
	DefaultPlan        = "free"
	DefaultMaxUsers    = 5
	DefaultMaxProjects = 3
)

// Tenant is an isolated customer organisation, the unit of data partitioning.
type Tenant struct {
	ID          string
	Name        string
	Subdomain   string // unique routing key, disambiguates logins across tenants
	Plan        string
	MaxUsers    int
	MaxProjects int
	Status      TenantStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive reports whether the tenant's users may authenticate.
func (t Tenant) IsActive() bool { return t.Status == TenantActive }
