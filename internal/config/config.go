package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName          = "ForgeUnboundDonationEngine"
	defaultAppVersion       = "1.0.0"
	defaultAppEnv           = "development"
	defaultPort             = "3000"
	defaultLogLevel         = "info"
	defaultConfigDir        = "public/config"
	defaultShutdownDelay    = 10 * time.Second
	defaultIdempotencyTTL   = 24 * time.Hour
	defaultProcessorTimeout = 30 * time.Second

	// Placeholder keys keep local development working; main warns loudly
	// when they are still in place.
	DummyPublishableKey = "pk_test_dummy_key_replace_with_real_key"
	DummyRestrictedKey  = "sk_test_dummy_secret_key_replace_with_real_key"
)

// Config captures application runtime configuration loaded from
// environment variables. Stripe keys and the webhook secret are opaque
// here; the packages that use them decide how strict to be.
type Config struct {
	AppName    string
	AppVersion string
	AppEnv     string
	Port       string
	LogLevel   string

	StripePublishableKey string
	StripeRestrictedKey  string
	StripeWebhookSecret  string

	RedisURL           string
	CampaignConfigDir  string
	EmbedAllowedOrigin string

	ShutdownPeriod   time.Duration
	IdempotencyTTL   time.Duration
	ProcessorTimeout time.Duration
}

// Load reads configuration values from the environment and populates a
// Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:              getEnv("APP_NAME", defaultAppName),
		AppVersion:           getEnv("APP_VERSION", defaultAppVersion),
		AppEnv:               getEnv("APP_ENV", defaultAppEnv),
		Port:                 getEnv("PORT", defaultPort),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", DummyPublishableKey),
		StripeRestrictedKey:  getEnv("STRIPE_RESTRICTED_KEY", DummyRestrictedKey),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		RedisURL:             os.Getenv("REDIS_URL"),
		CampaignConfigDir:    getEnv("CAMPAIGN_CONFIG_DIR", defaultConfigDir),
		EmbedAllowedOrigin:   os.Getenv("EMBED_ALLOWED_ORIGIN"),
		ShutdownPeriod:       defaultShutdownDelay,
		IdempotencyTTL:       defaultIdempotencyTTL,
		ProcessorTimeout:     defaultProcessorTimeout,
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT", cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", cfg.IdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.ProcessorTimeout, err = durationEnv("PROCESSOR_TIMEOUT", cfg.ProcessorTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development-like environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// StripeConfigured reports whether both Stripe keys have been replaced
// with real values.
func (c Config) StripeConfigured() bool {
	return c.StripeRestrictedKey != "" && !strings.Contains(c.StripeRestrictedKey, "dummy") &&
		c.StripePublishableKey != "" && !strings.Contains(c.StripePublishableKey, "dummy")
}

// StripeTestMode reports whether the publishable key is a test-mode key.
func (c Config) StripeTestMode() bool {
	return strings.HasPrefix(c.StripePublishableKey, "pk_test_")
}

// durationEnv reads <name>_SECONDS as an integer or <name> as a Go
// duration string, preferring the former, falling back to def.
func durationEnv(name string, def time.Duration) (time.Duration, error) {
	if v := os.Getenv(name + "_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s_SECONDS: %w", name, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(name); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", name, err)
		}
		return d, nil
	}
	return def, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
