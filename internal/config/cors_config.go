package config

type CorsConfig interface {
	GetAllowedOrigins() string
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type Cors struct{}

var _ CorsConfig = Cors{}

func (Cors) GetAllowedOrigins() string {
	return GetEnv("CORS_ALLOWED_ORIGINS", "*")
}

func (Cors) GetAllowedMethods() string {
	return GetEnv("CORS_ALLOWED_METHODS", "GET, POST, PUT, DELETE, OPTIONS")
}

func (Cors) GetAllowedHeaders() string {
	return GetEnv("CORS_ALLOWED_HEADERS", "Authorization, Content-Type")
}
