package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PETSHUB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	// Solo para desarrollo; en prod Validate exige uno propio.
	DefaultJWTSecret = "dev-secret-change-in-production"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	Password  PasswordConfig
	Redis     RedisConfig
	LikeLimit LikeRateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if strings.TrimSpace(c.DB.DSN) == "" {
			return fmt.Errorf("PETSHUB_DB_DSN is required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported PETSHUB_DB_DRIVER %q", c.DB.Driver)
	}

	if c.App.IsProd() && c.JWT.Secret == DefaultJWTSecret {
		return errors.New("PETSHUB_JWT_SECRET must be set in prod")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("PETSHUB_JWT_TTL must be positive")
	}
	if c.LikeLimit.Max < 0 || c.LikeLimit.AnonPerIP < 0 || c.LikeLimit.Window <= 0 {
		return errors.New("invalid like rate limit settings")
	}
	return nil
}

type AppConfig struct {
	Env       string `envconfig:"PETSHUB_APP_ENV" default:"dev"`
	Port      string `envconfig:"PETSHUB_APP_PORT" default:"3001"`
	LogLevel  string `envconfig:"PETSHUB_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PETSHUB_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver      string `envconfig:"PETSHUB_DB_DRIVER" default:"memory"`
	DSN         string `envconfig:"PETSHUB_DB_DSN"`
	AutoMigrate bool   `envconfig:"PETSHUB_DB_AUTO_MIGRATE" default:"true"`

	MaxOpenConns    int           `envconfig:"PETSHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PETSHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PETSHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type JWTConfig struct {
	Secret string        `envconfig:"PETSHUB_JWT_SECRET" default:"dev-secret-change-in-production"`
	Issuer string        `envconfig:"PETSHUB_JWT_ISSUER" default:"petshub"`
	TTL    time.Duration `envconfig:"PETSHUB_JWT_TTL" default:"168h"`
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"PETSHUB_PASSWORD_BCRYPT_COST" default:"10"`
}

// RedisConfig vacío desactiva el rate limit de likes.
type RedisConfig struct {
	URL string `envconfig:"PETSHUB_REDIS_URL"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type LikeRateLimitConfig struct {
	Window time.Duration `envconfig:"PETSHUB_LIKES_RATE_WINDOW" default:"1m"`
	Max    int           `envconfig:"PETSHUB_LIKES_RATE_MAX" default:"30"`

	// Tope de todos los anónimos de una IP; el X-Anonymous-Id lo elige el cliente. 0 lo apaga.
	AnonPerIP int `envconfig:"PETSHUB_LIKES_RATE_ANON_PER_IP" default:"120"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"PETSHUB_CORS_ORIGINS" default:"http://localhost:5173,http://localhost:5174,http://localhost:5175"`
}
