package service

import (
	"context"
	"testing"
	"time"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

var authTestSecret = []byte("0123456789abcdef0123456789abcdef")

func newAuthService(t *testing.T, mode LookupMode) (*AuthService, *ProvisionService) {
	t.Helper()

	st := newTestStore(t)
	signer, err := jwtx.NewSignerHS256(authTestSecret)
	require.NoError(t, err)

	auth := &AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     "tenantauth",
		SessionTTL: jwtx.DefaultSessionTTL,
		Mode:       mode,
	}
	return auth, &ProvisionService{Store: st}
}

func TestAuthenticateScoped(t *testing.T) {
	auth, prov := newAuthService(t, LookupScoped)
	ctx := context.Background()

	provisioned, err := prov.Provision(ctx, acmeInput())
	require.NoError(t, err)

	result, err := auth.Authenticate(ctx, "a@acme.com", "Secret123", "acme")
	require.NoError(t, err)
	require.Equal(t, int64(86400), result.ExpiresIn)
	require.Equal(t, "a@acme.com", result.User.Email)
	require.Empty(t, result.User.PasswordHash)

	// The token round-trips to the identity that was provisioned.
	verifier, err := jwtx.NewVerifierHS256(authTestSecret, "tenantauth")
	require.NoError(t, err)
	claims, err := verifier.Verify(result.Token)
	require.NoError(t, err)
	require.Equal(t, provisioned.AdminUser.ID, claims.Subject)
	require.Equal(t, provisioned.Tenant.ID, claims.TenantID)
	require.Equal(t, domain.RoleTenantAdmin, claims.Role)
	require.Equal(t, "a@acme.com", claims.Email)
	require.WithinDuration(t,
		time.Now().UTC().Add(jwtx.DefaultSessionTTL),
		claims.ExpiresAt.Time,
		5*time.Second,
	)
}

func TestAuthenticateOpaqueFailures(t *testing.T) {
	auth, prov := newAuthService(t, LookupScoped)
	ctx := context.Background()

	_, err := prov.Provision(ctx, acmeInput())
	require.NoError(t, err)

	// Wrong password and unknown email resolve to the same sentinel.
	_, err = auth.Authenticate(ctx, "a@acme.com", "WrongPass", "acme")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Authenticate(ctx, "nobody@acme.com", "Secret123", "acme")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateWrongSubdomain(t *testing.T) {
	auth, prov := newAuthService(t, LookupScoped)
	ctx := context.Background()

	_, err := prov.Provision(ctx, acmeInput())
	require.NoError(t, err)

	other := domain.ProvisionInput{
		TenantName:    "Globex",
		Subdomain:     "globex",
		AdminEmail:    "g@globex.com",
		AdminPassword: "Secret123",
		AdminFullName: "Gail",
	}
	_, err = prov.Provision(ctx, other)
	require.NoError(t, err)

	// Correct credentials under a different tenant's subdomain find no row.
	_, err = auth.Authenticate(ctx, "a@acme.com", "Secret123", "globex")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateSuspendedTenantWinsOverCorrectPassword(t *testing.T) {
	auth, prov := newAuthService(t, LookupScoped)
	ctx := context.Background()

	provisioned, err := prov.Provision(ctx, acmeInput())
	require.NoError(t, err)

	require.NoError(t, auth.Store.Tenants().UpdateTenantStatus(ctx, provisioned.Tenant.ID, domain.TenantSuspended))

	_, err = auth.Authenticate(ctx, "a@acme.com", "Secret123", "acme")
	require.ErrorIs(t, err, ErrTenantSuspended)

	// A wrong password on a suspended tenant reports suspension too; the
	// status check happens before the password verdict is revealed.
	_, err = auth.Authenticate(ctx, "a@acme.com", "WrongPass", "acme")
	require.ErrorIs(t, err, ErrTenantSuspended)
}

func TestAuthenticateValidation(t *testing.T) {
	auth, _ := newAuthService(t, LookupScoped)
	ctx := context.Background()

	_, err := auth.Authenticate(ctx, "", "Secret123", "acme")
	require.ErrorIs(t, err, ErrValidation)

	_, err = auth.Authenticate(ctx, "a@acme.com", "", "acme")
	require.ErrorIs(t, err, ErrValidation)

	_, err = auth.Authenticate(ctx, "a@acme.com", "Secret123", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestAuthenticateGlobalMode(t *testing.T) {
	auth, prov := newAuthService(t, LookupGlobal)
	ctx := context.Background()

	provisioned, err := prov.Provision(ctx, acmeInput())
	require.NoError(t, err)

	// Global mode needs no subdomain.
	result, err := auth.Authenticate(ctx, "a@acme.com", "Secret123", "")
	require.NoError(t, err)
	require.Equal(t, provisioned.AdminUser.ID, result.User.ID)

	_, err = auth.Authenticate(ctx, "a@acme.com", "WrongPass", "")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Suspension still gates global logins.
	require.NoError(t, auth.Store.Tenants().UpdateTenantStatus(ctx, provisioned.Tenant.ID, domain.TenantSuspended))
	_, err = auth.Authenticate(ctx, "a@acme.com", "Secret123", "")
	require.ErrorIs(t, err, ErrTenantSuspended)
}
