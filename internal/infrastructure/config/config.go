package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	// TokenTTL is the session lifetime measured from issuance.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel string        `env:"LOG_LEVEL, default=info"`
	// HashWorkers caps concurrent bcrypt operations.
	HashWorkers int `env:"HASH_WORKERS, default=8"`

	Postgres PostgresConfig
	Redis    RedisConfig
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/barangay_bis"`
}

// RedisConfig controls the optional login rate limiter. An empty Addr
// disables Redis entirely.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	DB          int           `env:"REDIS_DB,          default=0"`
	LoginLimit  int           `env:"LOGIN_RATE_LIMIT,  default=10"`
	LoginWindow time.Duration `env:"LOGIN_RATE_WINDOW, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
