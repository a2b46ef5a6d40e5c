package sqlite

import (
	"context"
	"database/sql"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/internal/identity/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, tenant_id, email, password_hash, full_name, role, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, tenant_id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.TenantID, u.Email, u.PasswordHash, u.FullName, u.Role, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = ?
	`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = ?
		ORDER BY created_at
		LIMIT 1
	`, email)
	return scanUser(row)
}

func (r *usersRepo) GetTenantUserByEmail(ctx context.Context, email, subdomain string) (domain.User, domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.tenant_id, u.email, u.password_hash, u.full_name, u.role, u.created_at, u.updated_at,
		       t.id, t.name, t.subdomain, t.subscription_plan, t.max_users, t.max_projects, t.status, t.created_at, t.updated_at
		FROM users u
		JOIN tenants t ON t.id = u.tenant_id
		WHERE u.email = ? AND t.subdomain = ?
	`, email, subdomain)

	var u domain.User
	var t domain.Tenant
	var status string
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		&t.ID, &t.Name, &t.Subdomain, &t.Plan, &t.MaxUsers, &t.MaxProjects, &status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, domain.Tenant{}, mapNotFound(err)
	}
	t.Status = domain.TenantStatus(status)
	return u, t, nil
}

func scanUser(row rowScanner) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.TenantID, &u.Email, &u.PasswordHash,
		&u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

// requireAffected turns a zero-row update into ErrNotFound so callers can
// tell a missing record apart from a successful no-op.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
