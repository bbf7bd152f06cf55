package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vbsbroadcast/go-tenant-login/internal/config"
)

func TestConfigDefaults(t *testing.T) {
	cfg := config.New()

	require.Equal(t, ":8080", cfg.GetPort())
	require.Equal(t, "Production Platform", cfg.GetAppName())
	require.Equal(t, "DEV", cfg.GetEnv())
	require.Equal(t, "./data", cfg.GetDataFolder())
	require.Equal(t, "./.state", cfg.GetStateFolder())
	require.Equal(t, "http://localhost:8080/api", cfg.GetAPIBaseURL())
	require.Empty(t, cfg.GetFixtureBaseURL())
	require.True(t, cfg.GetUseAPI())

	require.Equal(t, 5, cfg.GetMaxLoginAttempts())
	require.Equal(t, 5*time.Minute, cfg.GetLockoutDuration())
	require.Equal(t, 24*time.Hour, cfg.GetSessionTTL())
	require.Equal(t, 30*24*time.Hour, cfg.GetRememberMeTTL())
	require.False(t, cfg.GetInsecureDemoMode())
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("USE_API", "false")
	t.Setenv("MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("LOCKOUT_DURATION", "1m")
	t.Setenv("INSECURE_DEMO_MODE", "true")

	cfg := config.New()
	require.Equal(t, ":9090", cfg.GetPort())
	require.Equal(t, "PROD", cfg.GetEnv())
	require.False(t, cfg.GetUseAPI())
	require.Equal(t, 3, cfg.GetMaxLoginAttempts())
	require.Equal(t, time.Minute, cfg.GetLockoutDuration())
	require.True(t, cfg.GetInsecureDemoMode())
}

func TestConfigRejectsBadValues(t *testing.T) {
	t.Setenv("MAX_LOGIN_ATTEMPTS", "-1")
	t.Setenv("LOCKOUT_DURATION", "soon")
	t.Setenv("USE_API", "maybe")

	cfg := config.New()
	require.Equal(t, 5, cfg.GetMaxLoginAttempts())
	require.Equal(t, 5*time.Minute, cfg.GetLockoutDuration())
	require.True(t, cfg.GetUseAPI())
}

func TestConfigPortAlreadyPrefixed(t *testing.T) {
	t.Setenv("PORT", ":7070")
	require.Equal(t, ":7070", config.New().GetPort())
}
