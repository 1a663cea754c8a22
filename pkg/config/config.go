package config

import (
	"fmt"
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
	Storefront    StorefrontConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("%s is required", EnvDBDSN)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAZAARLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"BAZAARLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BAZAARLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAZAARLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BAZAARLINE_DB_DSN"`
	Driver string `envconfig:"BAZAARLINE_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"BAZAARLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BAZAARLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BAZAARLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BAZAARLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BAZAARLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BAZAARLINE_REDIS_ADDR"`
	Password     string        `envconfig:"BAZAARLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"BAZAARLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BAZAARLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BAZAARLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BAZAARLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BAZAARLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BAZAARLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BAZAARLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BAZAARLINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"BAZAARLINE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BAZAARLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BAZAARLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BAZAARLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BAZAARLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BAZAARLINE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"BAZAARLINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"BAZAARLINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"BAZAARLINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BAZAARLINE_AUTO_MIGRATE" default:"false"`
}

// StorefrontConfig carries the base URL handed to the storefront's API client.
type StorefrontConfig struct {
	APIBaseURL string `envconfig:"BAZAARLINE_STOREFRONT_API_URL" default:"http://localhost:4000/api"`
}
