package config

import (
	"fmt"
	"strings"
	"time"
)

// CartBackend selects where cart snapshots are persisted.
type CartBackend string

const (
	// CartBackendRedis stores snapshots in Redis (production default).
	CartBackendRedis CartBackend = "redis"
	// CartBackendPostgres stores snapshots in a Postgres table.
	CartBackendPostgres CartBackend = "postgres"
	// CartBackendMemory keeps snapshots in process memory (dev/tests).
	CartBackendMemory CartBackend = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for CartBackend.
func (b *CartBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "redis", "postgres", "memory":
		*b = CartBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid CartBackend: %q (valid options: redis, postgres, memory)", v)
	}
}

// CartConfig contains cart persistence configuration.
type CartConfig struct {
	// Backend selects the snapshot storage implementation.
	Backend CartBackend `env:"BACKEND" envDefault:"redis"`

	// KeyPrefix namespaces snapshot keys in shared storage.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"storez_cart:"`

	// TTL is how long an untouched snapshot is retained.
	// Zero means snapshots never expire.
	TTL time.Duration `env:"TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to cart configuration values.
func (c *CartConfig) Sanitize() {
	if c.KeyPrefix == "" {
		c.KeyPrefix = "storez_cart:"
	}
	if c.TTL < 0 {
		c.TTL = 0
	}
}

// RedisConfig contains Redis connection configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"storez"`
	Password string `env:"PASSWORD" envDefault:"storez"`
	Name     string `env:"NAME"     envDefault:"storez"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
}

// DSN builds a postgres connection string from the configuration.
func (d DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}
