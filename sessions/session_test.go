package sessions_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/sessions"
)

func TestSessionValidFor(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	valid := func() *sessions.Session {
		return &sessions.Session{
			Username:  "j.miller@tenant_001",
			TenantID:  "tenant_001",
			ExpiresAt: now.Add(time.Hour).UnixMilli(),
		}
	}

	tests := []struct {
		name     string
		mutate   func(*sessions.Session)
		tenantID string
		wantErr  error
	}{
		{name: "valid for owning tenant", tenantID: "tenant_001"},
		{name: "valid with tenant check skipped", tenantID: ""},
		{
			name:     "tenant mismatch",
			tenantID: "tenant_002",
			wantErr:  sessions.ErrTenantMismatch,
		},
		{
			name:     "tenant mismatch wins even when expired",
			mutate:   func(s *sessions.Session) { s.ExpiresAt = now.Add(-time.Hour).UnixMilli() },
			tenantID: "tenant_002",
			wantErr:  sessions.ErrTenantMismatch,
		},
		{
			name:     "expired for owning tenant",
			mutate:   func(s *sessions.Session) { s.ExpiresAt = now.Add(-time.Minute).UnixMilli() },
			tenantID: "tenant_001",
			wantErr:  sessions.ErrSessionExpired,
		},
		{
			name:     "expiry exactly now",
			mutate:   func(s *sessions.Session) { s.ExpiresAt = now.UnixMilli() },
			tenantID: "tenant_001",
			wantErr:  sessions.ErrSessionExpired,
		},
		{
			name:     "missing username",
			mutate:   func(s *sessions.Session) { s.Username = "" },
			tenantID: "tenant_001",
			wantErr:  sessions.ErrNoSession,
		},
		{
			name:     "missing tenant",
			mutate:   func(s *sessions.Session) { s.TenantID = "" },
			tenantID: "tenant_001",
			wantErr:  sessions.ErrNoSession,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			if tt.mutate != nil {
				tt.mutate(s)
			}
			err := s.ValidFor(tt.tenantID, now)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSessionComplete(t *testing.T) {
	var none *sessions.Session
	require.False(t, none.Complete())
	require.False(t, (&sessions.Session{Username: "u@t"}).Complete())
	require.False(t, (&sessions.Session{TenantID: "t"}).Complete())
	require.True(t, (&sessions.Session{Username: "u@t", TenantID: "t"}).Complete())
}

func TestSessionHasPermission(t *testing.T) {
	s := &sessions.Session{Permissions: []string{"equipment_management", "crm_access"}}
	require.True(t, s.HasPermission("crm_access"))
	require.False(t, s.HasPermission("user_management"))
	require.False(t, (&sessions.Session{}).HasPermission("crm_access"))
}

func TestSessionFullName(t *testing.T) {
	s := &sessions.Session{FirstName: "James", LastName: "Miller"}
	require.Equal(t, "James Miller", s.FullName())
}
