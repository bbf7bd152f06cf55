package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/auth"
)

func TestRemoteAuthenticatorSuccess(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success":      true,
			"access_token": "opaque-token-123",
			"token_type":   "bearer",
			"user": map[string]interface{}{
				"user_id":     "user-7",
				"username":    "j.miller@tenant_001",
				"tenant_id":   "tenant_001",
				"tenant_name": "Tenant One",
				"role":        "manager",
				"permissions": []string{"equipment_management"},
				"first_name":  "James",
				"last_name":   "Miller",
			},
		})
	}))
	defer srv.Close()

	authenticator := auth.NewRemoteAuthenticator(srv.URL)
	result, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: "tenant_001"}, "secret")
	require.NoError(t, err)

	require.Equal(t, "j.miller@tenant_001", gotBody["username"])
	require.Equal(t, "secret", gotBody["password"])

	require.Equal(t, "opaque-token-123", result.Token)
	require.Equal(t, "user-7", result.UserID)
	require.Equal(t, "tenant_001", result.TenantID)
	require.Equal(t, "Tenant One", result.TenantName)
	require.Equal(t, "manager", result.Role)
	require.Equal(t, []string{"equipment_management"}, result.Permissions)
	require.Equal(t, "James", result.FirstName)
	require.Equal(t, "Miller", result.LastName)
}

func TestRemoteAuthenticatorRejectionSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   map[string]string{"message": "Invalid credentials"},
		})
	}))
	defer srv.Close()

	authenticator := auth.NewRemoteAuthenticator(srv.URL)
	_, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "j.miller", TenantID: "tenant_001"}, "wrong")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
	require.Contains(t, err.Error(), "Invalid credentials")
}

func TestRemoteAuthenticatorFailureFlagWithOKStatus(t *testing.T) {
	// An explicit failure flag in the body counts even when the HTTP status
	// is a success.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	}))
	defer srv.Close()

	authenticator := auth.NewRemoteAuthenticator(srv.URL)
	_, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "a", TenantID: "b"}, "pw")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestRemoteAuthenticatorNonJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	authenticator := auth.NewRemoteAuthenticator(srv.URL)
	_, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "a", TenantID: "b"}, "pw")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}

func TestRemoteAuthenticatorUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	authenticator := auth.NewRemoteAuthenticator(srv.URL)
	_, err := authenticator.Authenticate(context.Background(), auth.Credentials{Username: "a", TenantID: "b"}, "pw")
	require.ErrorIs(t, err, auth.AuthenticationFailedErr)
}
