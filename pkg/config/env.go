package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SHITSU"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "SHITSU_APP_ENV"
	EnvPort      = "SHITSU_APP_PORT"
	EnvBaseURL   = "SHITSU_APP_BASE_URL"
	EnvDBDSN     = "SHITSU_DB_DSN"
	EnvDBHost    = "SHITSU_DB_HOST"
	EnvDBPort    = "SHITSU_DB_PORT"
	EnvDBUser    = "SHITSU_DB_USER"
	EnvDBName    = "SHITSU_DB_NAME"
	EnvRedisURL  = "SHITSU_REDIS_URL"
	EnvJWTSecret = "SHITSU_JWT_SECRET"
	EnvJWTIssuer = "SHITSU_JWT_ISSUER"
	EnvMediaDir  = "SHITSU_MEDIA_DIR"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
