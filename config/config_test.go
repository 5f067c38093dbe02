package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDBAndSecret(t *testing.T) {
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without DB_URL")
	}

	t.Setenv("DB_URL", "postgres://localhost/ejournal")
	if _, err := Load(); err == nil {
		t.Fatal("Load must fail without JWT_SECRET")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/ejournal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("TokenTTL = %v, want 24h", cfg.TokenTTL)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if string(cfg.JWTKey) != "s3cret" {
		t.Errorf("JWTKey = %q", cfg.JWTKey)
	}
}

func TestLoadBadTokenTTL(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/ejournal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "yesterday")
	if _, err := Load(); err == nil {
		t.Fatal("Load must reject an unparsable TOKEN_TTL")
	}
}
