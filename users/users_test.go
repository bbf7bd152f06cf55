package users_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

const directoryJSON = `{
	"tenant_id": "tenant_001",
	"users": [
		{
			"user_id": "user-1",
			"user_type": "staff",
			"personal_info": {"first_name": "James", "last_name": "Miller"},
			"access_credentials": {
				"username": "j.miller@tenant_001",
				"password": "secret",
				"is_active": true,
				"role": "manager",
				"permissions": ["equipment_management"]
			}
		},
		{
			"user_id": "user-2",
			"personal_info": {"first_name": "Dana", "last_name": "Frost"},
			"access_credentials": {
				"username": "d.frost@tenant_001",
				"password": "pw",
				"is_active": false,
				"role": "operator",
				"permissions": []
			}
		}
	]
}`

func testTenant() *tenants.Tenant {
	return &tenants.Tenant{TenantID: "tenant_001", TenantName: "Tenant One", IsActive: true, DataPath: "tenant_001"}
}

func TestDirectoryFind(t *testing.T) {
	directory := &users.Directory{Users: []users.User{
		{UserID: "user-1", Credentials: users.AccessCredentials{Username: "j.miller@tenant_001", IsActive: true}},
		{UserID: "user-2", Credentials: users.AccessCredentials{Username: "d.frost@tenant_001", IsActive: false}},
	}}

	require.NotNil(t, directory.Find("j.miller@tenant_001"))
	require.Nil(t, directory.Find("ghost@tenant_001"))
	require.Nil(t, (*users.Directory)(nil).Find("j.miller@tenant_001"))

	require.NotNil(t, directory.FindActive("j.miller@tenant_001"))
	require.Nil(t, directory.FindActive("d.frost@tenant_001"))
}

func TestUserHasPermission(t *testing.T) {
	user := users.User{Credentials: users.AccessCredentials{Permissions: []string{"crm_access"}}}
	require.True(t, user.HasPermission("crm_access"))
	require.False(t, user.HasPermission("user_management"))
}

func TestVerifyPassword(t *testing.T) {
	hashed, err := users.HashPassword("secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		stored   string
		want     bool
	}{
		{name: "bcrypt match", password: "secret", stored: hashed, want: true},
		{name: "bcrypt mismatch", password: "wrong", stored: hashed, want: false},
		{name: "plaintext match", password: "secret", stored: "secret", want: true},
		{name: "plaintext mismatch", password: "secret", stored: "other", want: false},
		{name: "empty stored never verifies", password: "anything", stored: "", want: false},
		{name: "empty password against empty stored", password: "", stored: "", want: false},
		{name: "bcrypt-looking stored is not compared literally", password: "$2a$10$garbage", stored: "$2a$10$garbage", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, users.VerifyPassword(tt.password, tt.stored))
		})
	}
}

func TestFileRepoDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tenant_001"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenant_001", "users.json"), []byte(directoryJSON), 0o600))

	directory, err := users.NewFileRepo(dir).Directory(context.Background(), testTenant())
	require.NoError(t, err)
	require.Equal(t, "tenant_001", directory.TenantID)
	require.Len(t, directory.Users, 2)
	require.Equal(t, "James", directory.Users[0].PersonalInfo.FirstName)
}

func TestFileRepoMissingDirectory(t *testing.T) {
	_, err := users.NewFileRepo(t.TempDir()).Directory(context.Background(), testTenant())
	require.ErrorIs(t, err, users.ErrDirectoryUnavailable)
}

func TestFileRepoNilTenant(t *testing.T) {
	_, err := users.NewFileRepo(t.TempDir()).Directory(context.Background(), nil)
	require.ErrorIs(t, err, users.ErrDirectoryUnavailable)
}

func TestHTTPRepoDirectory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(directoryJSON))
	}))
	defer server.Close()

	directory, err := users.NewHTTPRepo(server.URL).Directory(context.Background(), testTenant())
	require.NoError(t, err)
	require.Equal(t, "/tenant_001/users.json", gotPath)
	require.Len(t, directory.Users, 2)
}

func TestHTTPRepoServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := users.NewHTTPRepo(server.URL).Directory(context.Background(), testTenant())
	require.ErrorIs(t, err, users.ErrDirectoryUnavailable)
}
