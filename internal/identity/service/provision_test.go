package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/midgardlabs/tenantauth/internal/identity/domain"
	"github.com/midgardlabs/tenantauth/internal/identity/store"
	"github.com/midgardlabs/tenantauth/internal/identity/store/drivers/sqlite"
	"github.com/midgardlabs/tenantauth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "tenantauth-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)

	// os.Exit skips defers, so clean up before exiting.
	code := m.Run()
	os.Remove(pepperPath)
	os.Exit(code)
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	s, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func acmeInput() domain.ProvisionInput {
	return domain.ProvisionInput{
		TenantName:    "Acme",
		Subdomain:     "acme",
		AdminEmail:    "a@acme.com",
		AdminPassword: "Secret123",
		AdminFullName: "Ada",
	}
}

func TestProvisionCreatesTenantAndAdmin(t *testing.T) {
	st := newTestStore(t)
	svc := &ProvisionService{Store: st}
	ctx := context.Background()

	result, err := svc.Provision(ctx, acmeInput())
	require.NoError(t, err)
	require.NotEmpty(t, result.Tenant.ID)
	require.Equal(t, "acme", result.Tenant.Subdomain)
	require.Equal(t, domain.DefaultPlan, result.Tenant.Plan)
	require.Equal(t, domain.TenantActive, result.Tenant.Status)
	require.Equal(t, "a@acme.com", result.AdminUser.Email)
	require.Equal(t, domain.RoleTenantAdmin, result.AdminUser.Role)
	require.Equal(t, result.Tenant.ID, result.AdminUser.TenantID)
	require.Empty(t, result.AdminUser.PasswordHash, "result must not carry the hash")

	// Both rows are durably committed and visible to direct reads.
	user, tenant, err := st.Users().GetTenantUserByEmail(ctx, "a@acme.com", "acme")
	require.NoError(t, err)
	require.Equal(t, result.Tenant.ID, tenant.ID)
	require.Equal(t, domain.DefaultMaxUsers, tenant.MaxUsers)
	require.Equal(t, domain.DefaultMaxProjects, tenant.MaxProjects)

	// The stored hash verifies the plaintext but is not the plaintext.
	require.NotEqual(t, "Secret123", user.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("Secret123", user.PasswordHash))
}

func TestProvisionValidatesBeforeStoreAccess(t *testing.T) {
	st := newTestStore(t)
	svc := &ProvisionService{Store: st}
	ctx := context.Background()

	fields := []string{"tenantName", "subdomain", "adminEmail", "adminPassword", "adminFullName"}
	for _, field := range fields {
		t.Run("missing "+field, func(t *testing.T) {
			in := acmeInput()
			switch field {
			case "tenantName":
				in.TenantName = ""
			case "subdomain":
				in.Subdomain = "  "
			case "adminEmail":
				in.AdminEmail = ""
			case "adminPassword":
				in.AdminPassword = ""
			case "adminFullName":
				in.AdminFullName = ""
			}

			_, err := svc.Provision(ctx, in)
			require.ErrorIs(t, err, ErrValidation)
			require.ErrorContains(t, err, field)
		})
	}

	// Nothing was written on any of the failed attempts.
	_, err := st.Tenants().GetTenantBySubdomain(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProvisionDuplicateSubdomainConflicts(t *testing.T) {
	st := newTestStore(t)
	svc := &ProvisionService{Store: st}
	ctx := context.Background()

	_, err := svc.Provision(ctx, acmeInput())
	require.NoError(t, err)

	in := acmeInput()
	in.AdminEmail = "other@acme.com"
	_, err = svc.Provision(ctx, in)
	require.ErrorIs(t, err, ErrConflict)
}

// userFailStore wraps the real store but makes every user insert inside a
// transaction fail, simulating a store failure between the tenant insert and
// the user insert.
type userFailStore struct {
	store.Store
}

func (s userFailStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		return fn(userFailTx{tx})
	})
}

// storeTx lets userFailTx embed the transaction interface without the
// embedded field name colliding with the interface's Tx method.
type storeTx = store.Tx

type userFailTx struct {
	storeTx
}

func (t userFailTx) Users() store.Users { return failingUsers{t.storeTx.Users()} }

type failingUsers struct {
	store.Users
}

func (failingUsers) CreateUser(ctx context.Context, u domain.User) error {
	return errors.New("simulated write failure")
}

func TestProvisionRollsBackWhenUserInsertFails(t *testing.T) {
	st := newTestStore(t)
	svc := &ProvisionService{Store: userFailStore{st}}
	ctx := context.Background()

	_, err := svc.Provision(ctx, acmeInput())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrConflict)

	// The tenant insert succeeded inside the transaction, but the rollback
	// must have erased it: all-or-nothing.
	_, err = st.Tenants().GetTenantBySubdomain(ctx, "acme")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestProvisionRaceOnSubdomain(t *testing.T) {
	st := newTestStore(t)
	svc := &ProvisionService{Store: st}
	ctx := context.Background()

	const attempts = 8

	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Provision(ctx, acmeInput())
			results[i] = err
		}()
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, successes, "exactly one provisioning may win")
	require.Equal(t, attempts-1, conflicts)
}
