package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/internal/identity/store"
	"github.com/midgardlabs/tenantauth/pkg/cryptox"
	"github.com/midgardlabs/tenantauth/pkg/idx"
	"github.com/midgardlabs/tenantauth/pkg/slogx"
)

// ProvisionService creates a tenant together with its first administrator in
// a single store transaction. Either both rows commit or neither does; no
// reader ever observes a tenant without its admin user.
type ProvisionService struct {
	Store store.Store
}

// Provision validates the input, hashes the admin password, and writes the
// tenant and admin user atomically. The store's uniqueness constraints, not
// application logic, arbitrate concurrent attempts on the same subdomain.
func (s *ProvisionService) Provision(ctx context.Context, in domain.ProvisionInput) (domain.ProvisionResult, error) {
	l := slogx.FromContext(ctx)

	in.TenantName = strings.TrimSpace(in.TenantName)
	in.Subdomain = strings.TrimSpace(in.Subdomain)
	in.AdminEmail = strings.TrimSpace(in.AdminEmail)
	in.AdminFullName = strings.TrimSpace(in.AdminFullName)

	if err := validateProvisionInput(in); err != nil {
		return domain.ProvisionResult{}, err
	}

	passHash, err := cryptox.HashPassword(in.AdminPassword)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.ProvisionResult{}, fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	tenant := domain.Tenant{
		ID:          idx.New().String(),
		Name:        in.TenantName,
		Subdomain:   in.Subdomain,
		Plan:        domain.DefaultPlan,
		MaxUsers:    domain.DefaultMaxUsers,
		MaxProjects: domain.DefaultMaxProjects,
		Status:      domain.TenantActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	admin := domain.User{
		ID:           idx.New().String(),
		TenantID:     tenant.ID,
		Email:        in.AdminEmail,
		FullName:     in.AdminFullName,
		Role:         domain.RoleTenantAdmin,
		PasswordHash: passHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tenants().CreateTenant(ctx, tenant); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, admin)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.ProvisionResult{}, fmt.Errorf("%w: subdomain or email", ErrConflict)
		}
		l.Error("tenant provisioning failed",
			slog.String("subdomain", in.Subdomain),
			slog.Any("error", err),
		)
		return domain.ProvisionResult{}, fmt.Errorf("provision tenant: %w", err)
	}

	l.Info("tenant provisioned",
		slog.String("tenant_id", tenant.ID),
		slog.String("subdomain", tenant.Subdomain),
		slog.String("admin_user_id", admin.ID),
	)

	admin.PasswordHash = ""
	return domain.ProvisionResult{Tenant: tenant, AdminUser: admin}, nil
}

func validateProvisionInput(in domain.ProvisionInput) error {
	var missing []string
	if in.TenantName == "" {
		missing = append(missing, "tenantName")
	}
	if in.Subdomain == "" {
		missing = append(missing, "subdomain")
	}
	if in.AdminEmail == "" {
		missing = append(missing, "adminEmail")
	}
	if in.AdminPassword == "" {
		missing = append(missing, "adminPassword")
	}
	if in.AdminFullName == "" {
		missing = append(missing, "adminFullName")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
