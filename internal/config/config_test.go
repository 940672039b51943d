package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_EXPIRES_IN", "RATE_LIMIT_INTERVAL", "RATE_LIMIT_TTL", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.JWTExpirationDur != 30*time.Minute {
		t.Errorf("expected 30m token expiry, got %s", cfg.JWTExpirationDur)
	}
	if cfg.RateLimitInterval != time.Second {
		t.Errorf("expected 1s rate limit interval, got %s", cfg.RateLimitInterval)
	}
	if cfg.RateLimitTTL != time.Minute {
		t.Errorf("expected 60s rate limit ttl, got %s", cfg.RateLimitTTL)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected 2 default CORS origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_INTERVAL", "250ms")
	t.Setenv("JWT_EXPIRES_IN", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.RateLimitInterval != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %s", cfg.RateLimitInterval)
	}
	if cfg.JWTExpirationDur != 30*time.Minute {
		t.Errorf("invalid duration should fall back to 30m, got %s", cfg.JWTExpirationDur)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOrigins) != len(want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	for i := range want {
		if cfg.CORSOrigins[i] != want[i] {
			t.Errorf("origin %d: expected %s, got %s", i, want[i], cfg.CORSOrigins[i])
		}
	}
}
