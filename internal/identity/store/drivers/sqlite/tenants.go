package sqlite

import (
	"context"
	"time"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
)

type tenantsRepo struct {
	db dbtx
}

const tenantColumns = `id, name, subdomain, subscription_plan, max_users, max_projects, status, created_at, updated_at`

func (r *tenantsRepo) CreateTenant(ctx context.Context, t domain.Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, name, subdomain, subscription_plan, max_users, max_projects, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Subdomain, t.Plan, t.MaxUsers, t.MaxProjects, string(t.Status), t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *tenantsRepo) GetTenantByID(ctx context.Context, id string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE id = ?
	`, id)
	return scanTenant(row)
}

func (r *tenantsRepo) GetTenantBySubdomain(ctx context.Context, subdomain string) (domain.Tenant, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE subdomain = ?
	`, subdomain)
	return scanTenant(row)
}

func (r *tenantsRepo) UpdateTenantStatus(ctx context.Context, id string, status domain.TenantStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tenants
		SET status = ?, updated_at = ?
		WHERE id = ?
	`, string(status), time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(row rowScanner) (domain.Tenant, error) {
	var t domain.Tenant
	var status string
	err := row.Scan(
		&t.ID, &t.Name, &t.Subdomain, &t.Plan,
		&t.MaxUsers, &t.MaxProjects, &status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Tenant{}, mapNotFound(err)
	}
	t.Status = domain.TenantStatus(status)
	return t, nil
}
