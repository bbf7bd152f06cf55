package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	dataFolderVar = "DATA_FOLDER"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Production Platform")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetDataFolder is where the tenant registry and per-tenant fixture
// documents live.
func (EnvVars) GetDataFolder() string {
	return GetEnv(dataFolderVar, "./data")
}

// GetStateFolder holds the persisted session and lockout files. It plays the
// role of the browser's origin-scoped storage: every tenant's login on this
// machine shares it.
func (EnvVars) GetStateFolder() string {
	return GetEnv("STATE_FOLDER", "./.state")
}

// GetAPIBaseURL is the backend root used by the primary login strategy and
// the dashboard clients.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv("API_BASE_URL", "http://localhost:8080/api")
}

// GetFixtureBaseURL is the static host serving the legacy JSON documents.
// Empty means the legacy strategy reads the local data folder instead.
func (EnvVars) GetFixtureBaseURL() string {
	return GetEnv("FIXTURE_BASE_URL", "")
}

// GetUseAPI selects the authentication strategy once at startup: true for
// the backend API, false for the legacy JSON fixtures.
func (EnvVars) GetUseAPI() bool {
	return GetBoolEnv("USE_API", true)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetBoolEnv(envVar string, defaultValue bool) bool {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
