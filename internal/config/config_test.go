package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.JWTIssuer != "spacehub" {
		t.Errorf("JWTIssuer = %q, want %q", cfg.JWTIssuer, "spacehub")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":9999")
	}
	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "test-secret")
	}
}

func TestLoad_InvalidBcryptCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "99")
	if _, err := Load(); err == nil {
		t.Fatal("Load with BCRYPT_COST=99 should return error")
	}
}

func TestDurationAccessors(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "15m", AuthStoreTimeout: "2s", AuthzCacheTTL: "1m"}
	if got := cfg.AccessTTL(); got != 15*time.Minute {
		t.Errorf("AccessTTL = %v, want 15m", got)
	}
	if got := cfg.StoreTimeout(); got != 2*time.Second {
		t.Errorf("StoreTimeout = %v, want 2s", got)
	}
	if got := cfg.CacheTTL(); got != time.Minute {
		t.Errorf("CacheTTL = %v, want 1m", got)
	}
}

func TestDurationAccessors_Invalid(t *testing.T) {
	cfg := &Config{JWTAccessTTL: "bogus", AuthStoreTimeout: "", AuthzCacheTTL: "-1s"}
	if got := cfg.AccessTTL(); got != 24*time.Hour {
		t.Errorf("AccessTTL fallback = %v, want 24h", got)
	}
	if got := cfg.StoreTimeout(); got != 5*time.Second {
		t.Errorf("StoreTimeout fallback = %v, want 5s", got)
	}
	if got := cfg.CacheTTL(); got != 30*time.Second {
		t.Errorf("CacheTTL fallback = %v, want 30s", got)
	}
}
