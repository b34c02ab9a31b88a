package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.Address() != ":3000" {
		t.Fatalf("Address() = %q, want :3000", cfg.Address())
	}
	if cfg.StripePublishableKey != DummyPublishableKey {
		t.Fatalf("publishable key = %q, want dummy default", cfg.StripePublishableKey)
	}
	if cfg.StripeConfigured() {
		t.Fatal("dummy keys must not count as configured")
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("IdempotencyTTL = %v, want 24h", cfg.IdempotencyTTL)
	}
}

func TestIsDev(t *testing.T) {
	cases := []struct {
		env  string
		want bool
	}{
		{"development", true},
		{"dev", true},
		{"local", true},
		{"Development", true},
		{"production", false},
		{"staging", false},
		{"", false},
	}
	for _, tc := range cases {
		cfg := Config{AppEnv: tc.env}
		if got := cfg.IsDev(); got != tc.want {
			t.Fatalf("IsDev() with env %q = %v, want %v", tc.env, got, tc.want)
		}
	}
}

func TestStripeConfiguredAndTestMode(t *testing.T) {
	cfg := Config{
		StripePublishableKey: "pk_test_real",
		StripeRestrictedKey:  "sk_test_real",
	}
	if !cfg.StripeConfigured() {
		t.Fatal("real keys should count as configured")
	}
	if !cfg.StripeTestMode() {
		t.Fatal("pk_test_ prefix should report test mode")
	}

	cfg.StripePublishableKey = "pk_live_real"
	if cfg.StripeTestMode() {
		t.Fatal("pk_live_ prefix should not report test mode")
	}

	cfg.StripeRestrictedKey = DummyRestrictedKey
	if cfg.StripeConfigured() {
		t.Fatal("a dummy restricted key must not count as configured")
	}
}

func TestDurationEnvSecondsOverride(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("PROCESSOR_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ShutdownPeriod != 5*time.Second {
		t.Fatalf("ShutdownPeriod = %v, want 5s", cfg.ShutdownPeriod)
	}
	if cfg.ProcessorTimeout != 45*time.Second {
		t.Fatalf("ProcessorTimeout = %v, want 45s", cfg.ProcessorTimeout)
	}
}

func TestDurationEnvRejectsGarbage(t *testing.T) {
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-integer seconds value")
	}
}
