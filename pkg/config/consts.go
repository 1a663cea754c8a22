package config

const (
	EnvPrefix = "BAZAARLINE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "BAZAARLINE_APP_ENV"
	EnvPort       = "BAZAARLINE_APP_PORT"
	EnvDBDSN      = "BAZAARLINE_DB_DSN"
	EnvRedisURL   = "BAZAARLINE_REDIS_URL"
	EnvJWTSecret  = "BAZAARLINE_JWT_SECRET"
	EnvJWTIssuer  = "BAZAARLINE_JWT_ISSUER"
	EnvJWTExpMins = "BAZAARLINE_JWT_EXPIRATION_MINUTES"
)
