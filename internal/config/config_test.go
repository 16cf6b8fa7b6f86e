package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Port != "3001" {
		t.Fatalf("expected default port 3001, got %q", cfg.App.Port)
	}
	if cfg.DB.Driver != DriverMemory {
		t.Fatalf("expected memory driver by default, got %q", cfg.DB.Driver)
	}
	if cfg.JWT.TTL != 168*time.Hour {
		t.Fatalf("expected 7d token ttl, got %v", cfg.JWT.TTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 3 {
		t.Fatalf("expected 3 default origins, got %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis must be disabled without url")
	}
	if cfg.LikeLimit.AnonPerIP != 120 {
		t.Fatalf("expected anonymous per-ip cap 120, got %d", cfg.LikeLimit.AnonPerIP)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PETSHUB_DB_DRIVER", "sqlite")
	t.Setenv("PETSHUB_DB_DSN", "file:petshub.db")
	t.Setenv("PETSHUB_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("PETSHUB_LIKES_RATE_MAX", "5")
	t.Setenv("PETSHUB_LIKES_RATE_WINDOW", "10s")
	t.Setenv("PETSHUB_LIKES_RATE_ANON_PER_IP", "20")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.DB.Driver != DriverSQLite || cfg.DB.DSN != "file:petshub.db" {
		t.Fatalf("unexpected db config %+v", cfg.DB)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("expected redis enabled")
	}
	if cfg.LikeLimit.Max != 5 || cfg.LikeLimit.Window != 10*time.Second || cfg.LikeLimit.AnonPerIP != 20 {
		t.Fatalf("unexpected like limit %+v", cfg.LikeLimit)
	}
}

func TestLoad_SQLDriverRequiresDSN(t *testing.T) {
	t.Setenv("PETSHUB_DB_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected missing dsn to return an error")
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("PETSHUB_DB_DRIVER", "mongo")

	if _, err := Load(); err == nil {
		t.Fatal("expected unsupported driver error")
	}
}

func TestLoad_ProdRejectsDefaultSecret(t *testing.T) {
	t.Setenv("PETSHUB_APP_ENV", "prod")

	if _, err := Load(); err == nil {
		t.Fatal("expected default jwt secret to be rejected in prod")
	}

	t.Setenv("PETSHUB_JWT_SECRET", "a-real-secret")
	if _, err := Load(); err != nil {
		t.Fatalf("unexpected error with custom secret: %v", err)
	}
}
