package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage and revocation backends selectable at startup.
const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverRedis  = "redis"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=720h"`

	StoreDriver       string `env:"STORE_DRIVER,       default=memory"`
	RevocationDriver  string `env:"REVOCATION_DRIVER,  default=memory"`
	SerializerWorkers int    `env:"SERIALIZER_WORKERS, default=8"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=store_manager"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	DB       int    `env:"REDIS_DB,       default=0"`
	Password string `env:"REDIS_PASSWORD"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverMongo:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverMemory, DriverMongo, c.StoreDriver)
	}
	switch c.RevocationDriver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("REVOCATION_DRIVER must be %q or %q, got %q", DriverMemory, DriverRedis, c.RevocationDriver)
	}
	if c.SerializerWorkers < 1 {
		return fmt.Errorf("SERIALIZER_WORKERS must be positive, got %d", c.SerializerWorkers)
	}
	return nil
}
