package domain

// ProvisionInput carries everything needed to create a tenant and its first
// administrator in one atomic step.
type ProvisionInput struct {
	TenantName    string
	Subdomain     string
	AdminEmail    string
	AdminPassword string
	AdminFullName string
}

// ProvisionResult is the committed outcome of a successful provisioning.
// No session token is issued here; the caller authenticates separately.
type ProvisionResult struct {
	Tenant    Tenant
	AdminUser User
}

// LoginResult is what a successful authentication returns: the user, a
// signed session token, and the token's lifetime in seconds.
type LoginResult struct {
	User      User
	Token     string
	ExpiresIn int64
}
