package store

import (
	"context"
	"errors"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists is the structured surface of a uniqueness violation
	// (duplicate subdomain or duplicate tenant-scoped email). Callers should
	// never need to inspect driver error codes.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Tenants() Tenants
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Rollback also
	// runs on panic and on context cancellation, so no exit path leaves an
	// open transaction or a half-committed tenant/user pair.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Tenants interface {
	// CreateTenant inserts a new tenant (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on a duplicate subdomain.
	CreateTenant(ctx context.Context, t domain.Tenant) error

	// GetTenantByID returns a tenant by id.
	GetTenantByID(ctx context.Context, id string) (domain.Tenant, error)

	// GetTenantBySubdomain returns a tenant by its routing key.
	GetTenantBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error)

	// UpdateTenantStatus flips the lifecycle flag (active/suspended) and
	// bumps updated_at. Used by administrative flows; login checks the flag.
	UpdateTenantStatus(ctx context.Context, id string, status domain.TenantStatus) error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// tenant already has a user with this email.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email alone, across all tenants.
	// Only meaningful for deployments that keep emails globally unique.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetTenantUserByEmail looks a user up by (email, tenant subdomain) via
	// a join against tenants, returning both records. This is the scoped
	// login path.
	GetTenantUserByEmail(ctx context.Context, email, subdomain string) (domain.User, domain.Tenant, error)
}
