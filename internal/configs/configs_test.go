package configs

import (
	"strings"
	"testing"
)

// setBaseEnv clears every configuration variable and sets the storage
// credentials that are required in all environments.
func setBaseEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET", "DATABASE_URL",
	} {
		t.Setenv(key, "")
	}

	t.Setenv("S3_BUCKET_NAME", "meetrix-test")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_ACCESS_KEY_ID", "test-access-key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "test-secret-key")
}

func TestLoadConfigDevelopmentDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Fatalf("expected development environment, got %q", cfg.Environment)
	}
	if cfg.Port != 4000 {
		t.Fatalf("expected default port 4000, got %d", cfg.Port)
	}
	if cfg.JWTSecret == "" {
		t.Fatal("expected a development fallback JWT secret")
	}
	if !strings.Contains(cfg.DatabaseDSN, "postgres://") {
		t.Fatalf("expected a development database DSN, got %q", cfg.DatabaseDSN)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Fatalf("expected no allowed origins by default, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadConfigParsesAllowedOrigins(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.meetrix.io, https://staging.meetrix.io ,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	want := []string{"https://app.meetrix.io", "https://staging.meetrix.io"}
	if len(cfg.AllowedOrigins) != len(want) {
		t.Fatalf("expected %d origins, got %v", len(want), cfg.AllowedOrigins)
	}
	for i, origin := range want {
		if cfg.AllowedOrigins[i] != origin {
			t.Fatalf("origin %d: expected %q, got %q", i, origin, cfg.AllowedOrigins[i])
		}
	}
}

func TestLoadConfigRejectsInvalidPort(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "not-a-number")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-numeric port")
	}

	t.Setenv("PORT", "80")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for privileged port")
	}
}

func TestLoadConfigProductionRequiresSecrets(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET in production")
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL in production")
	}

	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/meetrix")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error with all secrets set: %v", err)
	}
	if cfg.JWTSecret != "a-real-secret" {
		t.Fatalf("unexpected JWT secret: %q", cfg.JWTSecret)
	}
}

func TestLoadConfigRequiresStorageSettings(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("S3_BUCKET_NAME", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing S3_BUCKET_NAME")
	}
}
