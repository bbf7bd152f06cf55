package config

import (
	"os"
	"strconv"
	"time"
)

type SecurityConfig interface {
	GetJWTSecret() string
	GetMaxLoginAttempts() int
	GetLockoutDuration() time.Duration
	GetSessionTTL() time.Duration
	GetRememberMeTTL() time.Duration
	GetInsecureDemoMode() bool
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetJWTSecret() string {
	return GetEnv("JWT_SECRET_KEY", "dev-secret-key-change-in-production-min-32-chars")
}

func (Security) GetMaxLoginAttempts() int {
	return getIntEnv("MAX_LOGIN_ATTEMPTS", 5)
}

func (Security) GetLockoutDuration() time.Duration {
	return getDurationEnv("LOCKOUT_DURATION", 5*time.Minute)
}

func (Security) GetSessionTTL() time.Duration {
	return getDurationEnv("SESSION_TTL", 24*time.Hour)
}

func (Security) GetRememberMeTTL() time.Duration {
	return getDurationEnv("REMEMBER_ME_TTL", 30*24*time.Hour)
}

// GetInsecureDemoMode gates the legacy strategy's acceptance of seeded
// accounts without a stored password. Off by default, always.
func (Security) GetInsecureDemoMode() bool {
	return GetBoolEnv("INSECURE_DEMO_MODE", false)
}

func getIntEnv(envVar string, defaultValue int) int {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func getDurationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
