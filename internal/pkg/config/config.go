package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultSecretKey signs session cookies when SECRET_KEY is not set. It is
// applied after processing because envconfig expands $ in tag defaults.
const DefaultSecretKey = "this-is-a-very$strong%secret!key123"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	DB      DBConfig
	Redis   RedisConfig
	Login   LoginConfig
}

type SessionConfig struct {
	SecretKey    string        `env:"SECRET_KEY"` // DefaultSecretKey when unset
	TTL          time.Duration `env:"SESSION_TTL,   default=30m"`
	CookieSecure bool          `env:"COOKIE_SECURE, default=false"`
}

type DBConfig struct {
	Path string `env:"DB_PATH, default=market.db"`
}

// RedisConfig enables login throttling when Addr is non-empty.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type LoginConfig struct {
	MaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	Lockout     time.Duration `env:"LOGIN_LOCKOUT,      default=15m"`
}

// IsDevelopment reports whether the process runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l. Tests pass envconfig.MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.Session.SecretKey == "" {
		cfg.Session.SecretKey = DefaultSecretKey
	}
	return &cfg, nil
}
