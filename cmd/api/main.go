package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/forgeunbound/donation_engine/internal/config"
	"github.com/forgeunbound/donation_engine/internal/infra"
	"github.com/forgeunbound/donation_engine/internal/logging"
	"github.com/forgeunbound/donation_engine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	if !cfg.StripeConfigured() {
		// Placeholder keys are acceptable for local development only.
		if !cfg.IsDev() {
			logger.Error("stripe keys are placeholders, refusing to start",
				"env", cfg.AppEnv,
				"hint", "set STRIPE_PUBLISHABLE_KEY and STRIPE_RESTRICTED_KEY")
			os.Exit(1)
		}
		logger.Warn("stripe keys are placeholders, payment requests will fail",
			"hint", "set STRIPE_PUBLISHABLE_KEY and STRIPE_RESTRICTED_KEY")
	} else if cfg.StripeTestMode() {
		logger.Info("stripe running in test mode")
	}
	if cfg.StripeWebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET not set, /webhook will reject all events")
	}

	ctx := context.Background()

	// Redis is optional: without it the intent endpoint still works, it
	// just loses replay deduplication.
	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("connect redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := cache.Close(); err != nil {
				logger.Warn("close redis", "error", err)
			}
		}()
	} else {
		logger.Info("REDIS_URL not set, idempotency replay disabled")
	}

	srv, err := server.New(cfg, cache, logger)
	if err != nil {
		logger.Error("build server", "error", err)
		os.Exit(1)
	}

	logger.Info("starting donation engine",
		"addr", cfg.Address(),
		"env", cfg.AppEnv,
		"version", cfg.AppVersion,
	)

	srvErrCh := make(chan error, 1)
	go func() {
		srvErrCh <- srv.Listen()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-srvErrCh:
		if err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownPeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited cleanly")
}
