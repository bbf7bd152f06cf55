package config

type Config interface {
	EnvConfig
	SecurityConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetDataFolder() string
	GetStateFolder() string
	GetAPIBaseURL() string
	GetFixtureBaseURL() string
	GetUseAPI() bool
}

type mainConfig struct {
	EnvVars
	Security
	Cors
}

func New() Config {
	return mainConfig{}
}
