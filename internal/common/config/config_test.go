package config

import (
	"errors"
	"testing"
	"time"

	commonerrors "github.com/ardanovsky/todo-service/internal/common/errors"
)

const validSecret = "0123456789abcdef0123456789abcdef"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todos")
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todos")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/todos")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrInvalidJWTSecret) {
		t.Errorf("expected ErrInvalidJWTSecret, got %v", err)
	}
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", validSecret)
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Errorf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("REQUEST_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected default timeout 5s, got %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("expected default log level INFO, got %q", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("REQUEST_TIMEOUT", "10s")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.HTTPPort)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("expected log level DEBUG, got %q", cfg.LogLevel)
	}
}

func TestLoad_MalformedOptionalValuesFallBack(t *testing.T) {
	setRequired(t)
	t.Setenv("BCRYPT_COST", "not-a-number")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected fallback bcrypt cost, got %d", cfg.BcryptCost)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("expected fallback timeout, got %v", cfg.RequestTimeout)
	}
}
