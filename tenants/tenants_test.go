package tenants_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
)

const registryJSON = `{
	"tenants": [
		{"tenant_id": "tenant_001", "tenant_name": "Tenant One", "is_active": true, "data_path": "tenant_001"},
		{"tenant_id": "tenant_off", "tenant_name": "Dormant", "is_active": false, "data_path": "tenant_off"}
	]
}`

func TestRegistryFind(t *testing.T) {
	registry := &tenants.Registry{Tenants: []tenants.Tenant{
		{TenantID: "tenant_001", TenantName: "Tenant One"},
		{TenantID: "tenant_002", TenantName: "Tenant Two"},
	}}

	found := registry.Find("tenant_002")
	require.NotNil(t, found)
	require.Equal(t, "Tenant Two", found.TenantName)

	require.Nil(t, registry.Find("tenant_404"))
	require.Nil(t, (*tenants.Registry)(nil).Find("tenant_001"))
}

func TestFileRepoRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenants.json"), []byte(registryJSON), 0o600))

	registry, err := tenants.NewFileRepo(dir).Registry(context.Background())
	require.NoError(t, err)
	require.Len(t, registry.Tenants, 2)

	tenant := registry.Find("tenant_001")
	require.NotNil(t, tenant)
	require.True(t, tenant.IsActive)
	require.Equal(t, "tenant_001", tenant.DataPath)
}

func TestFileRepoMissingRegistry(t *testing.T) {
	_, err := tenants.NewFileRepo(t.TempDir()).Registry(context.Background())
	require.ErrorIs(t, err, tenants.ErrRegistryUnavailable)
}

func TestFileRepoMalformedRegistry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tenants.json"), []byte("{broken"), 0o600))

	_, err := tenants.NewFileRepo(dir).Registry(context.Background())
	require.ErrorIs(t, err, tenants.ErrRegistryUnavailable)
}

func TestHTTPRepoRegistry(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(registryJSON))
	}))
	defer server.Close()

	registry, err := tenants.NewHTTPRepo(server.URL + "/").Registry(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/tenants.json", gotPath)
	require.Len(t, registry.Tenants, 2)
}

func TestHTTPRepoServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := tenants.NewHTTPRepo(server.URL).Registry(context.Background())
	require.ErrorIs(t, err, tenants.ErrRegistryUnavailable)
}

func TestHTTPRepoUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := tenants.NewHTTPRepo(server.URL).Registry(context.Background())
	require.ErrorIs(t, err, tenants.ErrRegistryUnavailable)
}
