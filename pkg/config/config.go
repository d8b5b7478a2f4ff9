package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	Idempotency   IdempotencyConfig
	Media         MediaConfig
	Telegram      TelegramConfig
	CORS          CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHITSU_APP_ENV" required:"true"`
	Port         string `envconfig:"SHITSU_APP_PORT" required:"true"`
	BaseURL      string `envconfig:"SHITSU_APP_BASE_URL" default:"http://localhost:8080"`
	LogLevel     string `envconfig:"SHITSU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHITSU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHITSU_DB_DSN"`
	Driver string `envconfig:"SHITSU_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHITSU_DB_HOST"`
	LegacyPort     int    `envconfig:"SHITSU_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHITSU_DB_USER"`
	LegacyPassword string `envconfig:"SHITSU_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHITSU_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHITSU_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHITSU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHITSU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHITSU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHITSU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHITSU_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHITSU_REDIS_ADDR"`
	Password     string        `envconfig:"SHITSU_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHITSU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHITSU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHITSU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHITSU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHITSU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHITSU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig drives admin session tokens. Tokens carry no expiry claim;
// a session stays valid until logout revokes it server-side.
type JWTConfig struct {
	Secret string `envconfig:"SHITSU_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SHITSU_JWT_ISSUER" default:"shitsu"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHITSU_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHITSU_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHITSU_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHITSU_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHITSU_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow  time.Duration `envconfig:"SHITSU_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginIPLimit int           `envconfig:"SHITSU_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"10"`
	SetupWindow  time.Duration `envconfig:"SHITSU_AUTH_RATE_LIMIT_SETUP_WINDOW" default:"5m"`
	SetupIPLimit int           `envconfig:"SHITSU_AUTH_RATE_LIMIT_SETUP_IP_LIMIT" default:"5"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHITSU_AUTO_MIGRATE" default:"false"`
}

// CartConfig controls the sliding lifetime of anonymous carts.
type CartConfig struct {
	TTL time.Duration `envconfig:"SHITSU_CART_TTL" default:"720h"`
}

type IdempotencyConfig struct {
	OrderTTL time.Duration `envconfig:"SHITSU_IDEMPOTENCY_ORDER_TTL" default:"168h"`
	AdminTTL time.Duration `envconfig:"SHITSU_IDEMPOTENCY_ADMIN_TTL" default:"24h"`
}

type MediaConfig struct {
	Dir            string `envconfig:"SHITSU_MEDIA_DIR" default:"./uploads"`
	MaxUploadMB    int    `envconfig:"SHITSU_MAX_UPLOAD_MB" default:"20"`
	ImageMaxWidth  int    `envconfig:"SHITSU_MEDIA_IMAGE_MAX_WIDTH" default:"1920"`
	ImageMaxHeight int    `envconfig:"SHITSU_MEDIA_IMAGE_MAX_HEIGHT" default:"1920"`
	ImageQuality   int    `envconfig:"SHITSU_MEDIA_IMAGE_QUALITY" default:"85"`
}

// TelegramConfig names the chat that receives checkout hand-offs.
type TelegramConfig struct {
	Host   string `envconfig:"SHITSU_TELEGRAM_HOST" default:"t.me"`
	Handle string `envconfig:"SHITSU_TELEGRAM_HANDLE" default:"shitsu_zakaz"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHITSU_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
