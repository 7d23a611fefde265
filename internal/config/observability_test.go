package config

import (
	"testing"
	"time"
)

func TestObservabilityDefaults(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if !cfg.HealthChecks.Enabled {
		t.Error("health checks should be enabled by default")
	}
	if cfg.HealthChecks.Interval < time.Second || cfg.HealthChecks.Timeout < time.Second {
		t.Errorf("health check durations below the minimum: %+v", cfg.HealthChecks)
	}
}

func TestObservabilityIsProduction(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	if cfg.IsProduction() {
		t.Error("development defaults reported as production")
	}

	cfg.Environment = "production"
	if !cfg.IsProduction() {
		t.Error("production environment not detected")
	}
}

func TestObservabilityGetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()

	cfg.Logging.Level = ""
	cfg.Environment = "production"
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("production default level = %q, want info", got)
	}

	cfg.Environment = "development"
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Errorf("development default level = %q, want debug", got)
	}

	cfg.Logging.Level = "warn"
	if got := cfg.GetLogLevel(); got != "warn" {
		t.Errorf("explicit level = %q, want warn", got)
	}
}

func TestObservabilityValidateRejectsBadLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = "verbose"

	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}
