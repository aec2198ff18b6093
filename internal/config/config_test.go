package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("expected default port 3001, got %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != DefaultJWTSecret {
		t.Errorf("expected default JWT secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != 7*24*time.Hour {
		t.Errorf("expected 7-day token TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("expected memory store driver, got %q", cfg.Store.Driver)
	}
	if cfg.Rewards.ThresholdPoints != 50 || cfg.Rewards.ThresholdBadge != "Curious Explorer" {
		t.Errorf("unexpected reward thresholds: %+v", cfg.Rewards)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("JWT_SECRET", "real-secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("BADGE_THRESHOLD_POINTS", "100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 8088 {
		t.Errorf("expected port 8088, got %d", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "real-secret" {
		t.Errorf("expected overridden secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.Auth.TokenTTL)
	}
	if cfg.Store.Driver != "redis" {
		t.Errorf("expected redis driver, got %q", cfg.Store.Driver)
	}
	if cfg.Rewards.ThresholdPoints != 100 {
		t.Errorf("expected threshold 100, got %d", cfg.Rewards.ThresholdPoints)
	}
}

func TestLoadRejectsBadDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown store driver")
	}
}

func TestLoadRequiresDSNForPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when postgres driver has no DSN")
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "99999")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}
