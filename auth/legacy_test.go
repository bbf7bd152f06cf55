package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/auth"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	tenantrepofakes "github.com/vbsbroadcast/go-tenant-login/tenants/repofakes"
	"github.com/vbsbroadcast/go-tenant-login/users"
	fakeuserrepo "github.com/vbsbroadcast/go-tenant-login/users/repofake"
)

const (
	legacyTenantID   = "tenant_001"
	legacyTenantName = "Tenant One"
)

type legacyFixture struct {
	tenantRepo *tenantrepofakes.FakeTenantRepo
	userRepo   *fakeuserrepo.FakeUserRepo
}

func setupLegacyFixture(t *testing.T, userList ...users.User) *legacyFixture {
	t.Helper()

	tr := tenantrepofakes.NewFakeTenantRepo(
		tenants.Tenant{TenantID: legacyTenantID, TenantName: legacyTenantName, IsActive: true, DataPath: "tenant_001"},
		tenants.Tenant{TenantID: "tenant_off", TenantName: "Dormant", IsActive: false, DataPath: "tenant_off"},
	)
	ur := fakeuserrepo.NewFakeUserRepo()
	ur.SetDirectory(legacyTenantID, &users.Directory{TenantID: legacyTenantID, Users: userList})
	ur.SetDirectory("tenant_off", &users.Directory{TenantID: "tenant_off"})

	return &legacyFixture{tenantRepo: tr, userRepo: ur}
}

func legacyUser(username, password string, active bool) users.User {
	return users.User{
		UserID:   "user-1",
		UserType: "staff",
		PersonalInfo: users.PersonalInfo{
			FirstName: "James",
			LastName:  "Miller",
		},
		Credentials: users.AccessCredentials{
			Username:    username,
			Password:    password,
			IsActive:    active,
			Role:        "manager",
			Permissions: []string{"equipment_management", "crm_access"},
		},
	}
}

func TestLegacyAuthenticateSuccess(t *testing.T) {
	f := setupLegacyFixture(t, legacyUser("j.miller@tenant_001", "secret", true))
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	result, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: legacyTenantID}, "secret")
	require.NoError(t, err)

	require.Empty(t, result.Token) // no token issuer in this strategy
	require.Equal(t, legacyTenantID, result.TenantID)
	require.Equal(t, legacyTenantName, result.TenantName)
	require.Equal(t, "j.miller@tenant_001", result.Username)
	require.Equal(t, "manager", result.Role)
	require.Equal(t, "James", result.FirstName)
}

func TestLegacyAuthenticateWrongPassword(t *testing.T) {
	f := setupLegacyFixture(t, legacyUser("j.miller@tenant_001", "secret", true))
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: legacyTenantID}, "nope")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestLegacyAuthenticateUnknownUser(t *testing.T) {
	f := setupLegacyFixture(t)
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "ghost", TenantID: legacyTenantID}, "pw")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestLegacyAuthenticateInactiveUser(t *testing.T) {
	f := setupLegacyFixture(t, legacyUser("j.miller@tenant_001", "secret", false))
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: legacyTenantID}, "secret")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestLegacyAuthenticateUnknownTenant(t *testing.T) {
	f := setupLegacyFixture(t)
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: "tenant_missing"}, "secret")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
	require.Contains(t, err.Error(), "tenant not found")
}

func TestLegacyAuthenticateInactiveTenant(t *testing.T) {
	f := setupLegacyFixture(t)
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "anyone", TenantID: "tenant_off"}, "secret")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
	require.Contains(t, err.Error(), "inactive")
}

func TestLegacyAuthenticateInactiveTenantSkipsUserFetch(t *testing.T) {
	// The users document is only fetched after the registry resolves an
	// active tenant.
	f := setupLegacyFixture(t)
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "anyone", TenantID: "tenant_off"}, "secret")
	require.Error(t, err)
	require.Equal(t, 1, f.tenantRepo.Calls())
	require.Equal(t, 0, f.userRepo.Calls())
}

func TestLegacyNoStoredPasswordRequiresDemoMode(t *testing.T) {
	f := setupLegacyFixture(t, legacyUser("seed@tenant_001", "", true))
	creds := auth.Credentials{Username: "seed", TenantID: legacyTenantID}

	strict, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)
	_, err = strict.Authenticate(context.Background(), creds, "whatever")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)

	permissive, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo, auth.WithInsecureDemoMode())
	require.NoError(t, err)

	// Any non-empty password is accepted for seeded accounts.
	result, err := permissive.Authenticate(context.Background(), creds, "whatever")
	require.NoError(t, err)
	require.Equal(t, "seed@tenant_001", result.Username)

	// An empty password still fails.
	_, err = permissive.Authenticate(context.Background(), creds, "")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestLegacyRegistryUnavailable(t *testing.T) {
	f := setupLegacyFixture(t)
	f.tenantRepo.FailWith(tenants.ErrRegistryUnavailable)
	authenticator, err := auth.NewLegacyJSONAuthenticator(f.tenantRepo, f.userRepo)
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), auth.Credentials{Username: "a", TenantID: legacyTenantID}, "pw")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestNewLegacyJSONAuthenticatorValidation(t *testing.T) {
	f := setupLegacyFixture(t)

	_, err := auth.NewLegacyJSONAuthenticator(nil, f.userRepo)
	require.Error(t, err)

	_, err = auth.NewLegacyJSONAuthenticator(f.tenantRepo, nil)
	require.Error(t, err)
}
