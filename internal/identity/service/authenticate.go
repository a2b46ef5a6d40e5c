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
	"github.com/midgardlabs/tenantauth/pkg/jwtx"
	"github.com/midgardlabs/tenantauth/pkg/slogx"
)

// LookupMode selects how a login's user record is resolved.
type LookupMode string

const (
	// LookupScoped resolves the user by (email, tenant subdomain). Two
	// tenants may each have a user with the same email.
	LookupScoped LookupMode = "scoped"

	// LookupGlobal resolves the user by email alone. Only sound when the
	// deployment keeps emails globally unique.
	LookupGlobal LookupMode = "global"
)

// AuthService verifies a credential pair and issues a signed session token.
// It is read-only against the store; no transaction is needed.
type AuthService struct {
	Store      store.Store
	Signer     jwtx.Signer
	Issuer     string
	SessionTTL time.Duration
	Mode       LookupMode
}

// Authenticate resolves the user per the configured lookup mode, checks the
// tenant is active, verifies the password, and returns a session token with
// the configured TTL. Unknown email and wrong password are deliberately
// indistinguishable; a suspended tenant is deliberately distinct and takes
// precedence over the password check's outcome.
func (s *AuthService) Authenticate(ctx context.Context, email, password, tenantSubdomain string) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	email = strings.TrimSpace(email)
	tenantSubdomain = strings.TrimSpace(tenantSubdomain)

	if err := s.validateLoginInput(email, password, tenantSubdomain); err != nil {
		return domain.LoginResult{}, err
	}

	user, tenant, err := s.lookup(ctx, email, tenantSubdomain)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.LoginResult{}, ErrInvalidCredentials
		}
		l.Error("login lookup failed", slog.Any("error", err))
		return domain.LoginResult{}, fmt.Errorf("login lookup: %w", err)
	}

	if !tenant.IsActive() {
		return domain.LoginResult{}, ErrTenantSuspended
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.LoginResult{}, ErrInvalidCredentials
	}

	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	claims := jwtx.NewSessionClaims(
		user.ID,
		user.TenantID,
		user.Role,
		user.Email,
		s.Issuer,
		ttl,
		time.Now().UTC(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		l.Error("failed to sign session token", slog.Any("error", err))
		return domain.LoginResult{}, fmt.Errorf("sign session token: %w", err)
	}

	l.Info("user authenticated",
		slog.String("user_id", user.ID),
		slog.String("tenant_id", user.TenantID),
	)

	user.PasswordHash = ""
	return domain.LoginResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(ttl.Seconds()),
	}, nil
}

func (s *AuthService) validateLoginInput(email, password, tenantSubdomain string) error {
	var missing []string
	if email == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if s.Mode != LookupGlobal && tenantSubdomain == "" {
		missing = append(missing, "tenantSubdomain")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

func (s *AuthService) lookup(ctx context.Context, email, tenantSubdomain string) (domain.User, domain.Tenant, error) {
	if s.Mode == LookupGlobal {
		user, err := s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return domain.User{}, domain.Tenant{}, err
		}
		tenant, err := s.Store.Tenants().GetTenantByID(ctx, user.TenantID)
		if err != nil {
			return domain.User{}, domain.Tenant{}, err
		}
		return user, tenant, nil
	}
	return s.Store.Users().GetTenantUserByEmail(ctx, email, tenantSubdomain)
}
