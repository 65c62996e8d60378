package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AccessTokenTTL != 15*time.Minute || cfg.RefreshTokenTTL != 720*time.Hour {
		t.Fatalf("unexpected ttls: %s %s", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.StoreDriver != DriverMemory || cfg.RevocationDriver != DriverMemory {
		t.Fatalf("unexpected drivers: %s %s", cfg.StoreDriver, cfg.RevocationDriver)
	}
	if cfg.SerializerWorkers != 8 {
		t.Fatalf("expected 8 workers, got %d", cfg.SerializerWorkers)
	}
	if cfg.Mongo.Database != "store_manager" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected backend defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"ACCESS_TOKEN_TTL":   "5m",
		"STORE_DRIVER":       "mongo",
		"REVOCATION_DRIVER":  "redis",
		"SERIALIZER_WORKERS": "2",
		"REDIS_PASSWORD":     "pw",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m, got %s", cfg.AccessTokenTTL)
	}
	if cfg.StoreDriver != DriverMongo || cfg.RevocationDriver != DriverRedis || cfg.SerializerWorkers != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Redis.Password != "pw" || cfg.IsDevelopment() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "postgres",
	}))
	if err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected STORE_DRIVER error, got %v", err)
	}
}
