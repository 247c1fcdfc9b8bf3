package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ADMIN_KEY", "JWT_SECRET", "ADMIN_AUTH_ENABLED", "DB_TYPE", "DB_DSN", "REDIS_HOST", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.JWTSecret != DefaultJWTSecret || cfg.AdminKey != DefaultAdminKey {
		t.Errorf("unexpected secrets %q / %q", cfg.JWTSecret, cfg.AdminKey)
	}
	if cfg.AdminAuthEnabled {
		t.Error("admin auth should be off by default")
	}
	if len(cfg.insecure) != 2 {
		t.Errorf("insecure = %v, want ADMIN_KEY and JWT_SECRET", cfg.insecure)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q", cfg.Database.Type)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v", cfg.TokenTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ADMIN_KEY", "k")
	t.Setenv("ADMIN_AUTH_ENABLED", "true")
	t.Setenv("DB_TYPE", "Postgres")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")

	cfg := Load()
	if cfg.Port != "9090" || cfg.JWTSecret != "s3cret" || !cfg.AdminAuthEnabled {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Database.Type != "postgres" {
		t.Errorf("Database.Type = %q", cfg.Database.Type)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if len(cfg.insecure) != 0 {
		t.Errorf("insecure = %v", cfg.insecure)
	}
}

func TestLoadInvalidPortFallsBack(t *testing.T) {
	t.Setenv("PORT", "http")
	if cfg := Load(); cfg.Port != DefaultPort {
		t.Errorf("Port = %q", cfg.Port)
	}
}
