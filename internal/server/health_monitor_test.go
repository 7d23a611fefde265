package server

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/rs/zerolog"
)

func TestHealthMonitorSweepReportsFailures(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out)

	var recorded []string
	record := func(name string, _ error) {
		recorded = append(recorded, name)
	}

	monitor := newHealthMonitor(config.HealthChecksConfig{
		Interval: time.Second,
		Timeout:  time.Second,
	}, &logger, record, []dependencyCheck{
		{name: "database", ping: func(context.Context) error { return nil }},
		{name: "redis", ping: func(context.Context) error { return errors.New("connection refused") }},
	})

	failed := monitor.sweep(context.Background())

	if len(failed) != 1 || failed[0] != "redis" {
		t.Fatalf("failed = %v, want [redis]", failed)
	}
	if len(recorded) != 1 || recorded[0] != "redis" {
		t.Errorf("recorded = %v, want [redis]", recorded)
	}
	if !strings.Contains(out.String(), "dependency health check failed") {
		t.Errorf("expected a failure log line, got %q", out.String())
	}
	if strings.Contains(out.String(), "database") {
		t.Errorf("healthy dependency should not be logged, got %q", out.String())
	}
}

func TestHealthMonitorSweepHonorsTimeout(t *testing.T) {
	logger := zerolog.Nop()

	monitor := newHealthMonitor(config.HealthChecksConfig{
		Interval: time.Second,
		Timeout:  10 * time.Millisecond,
	}, &logger, nil, []dependencyCheck{
		{name: "database", ping: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}},
	})

	failed := monitor.sweep(context.Background())
	if len(failed) != 1 || failed[0] != "database" {
		t.Fatalf("failed = %v, want [database]", failed)
	}
}

func TestHealthMonitorRunAndShutdown(t *testing.T) {
	logger := zerolog.Nop()

	var pings atomic.Int64
	monitor := newHealthMonitor(config.HealthChecksConfig{
		Interval: 5 * time.Millisecond,
		Timeout:  time.Second,
	}, &logger, nil, []dependencyCheck{
		{name: "database", ping: func(context.Context) error {
			pings.Add(1)
			return nil
		}},
	})

	monitor.start()

	deadline := time.After(time.Second)
	for pings.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no sweep ran within a second")
		case <-time.After(time.Millisecond):
		}
	}

	monitor.shutdown()

	// The loop has exited, no further sweeps may run.
	settled := pings.Load()
	time.Sleep(20 * time.Millisecond)
	if pings.Load() != settled {
		t.Errorf("sweeps continued after shutdown: %d -> %d", settled, pings.Load())
	}
}
