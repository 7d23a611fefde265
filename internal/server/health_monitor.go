package server

import (
	"context"
	"time"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/rs/zerolog"
)

// dependencyCheck is a named ping against one external dependency.
type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// healthMonitor periodically pings external dependencies and reports
// failures, so lost connectivity shows up in logs and APM without
// waiting for the next /status request.
type healthMonitor struct {
	interval time.Duration
	timeout  time.Duration
	checks   []dependencyCheck
	logger   *zerolog.Logger
	record   func(name string, err error)

	stop chan struct{}
	done chan struct{}
}

func newHealthMonitor(cfg config.HealthChecksConfig, logger *zerolog.Logger, record func(string, error), checks []dependencyCheck) *healthMonitor {
	return &healthMonitor{
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		checks:   checks,
		logger:   logger,
		record:   record,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *healthMonitor) start() {
	go m.run()
}

func (m *healthMonitor) run() {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep(context.Background())
		}
	}
}

// sweep pings every dependency once and returns the names that failed.
func (m *healthMonitor) sweep(ctx context.Context) []string {
	var failed []string

	for _, check := range m.checks {
		checkCtx, cancel := context.WithTimeout(ctx, m.timeout)
		err := check.ping(checkCtx)
		cancel()

		if err == nil {
			continue
		}

		failed = append(failed, check.name)
		m.logger.Error().Err(err).Str("dependency", check.name).Msg("dependency health check failed")
		if m.record != nil {
			m.record(check.name, err)
		}
	}

	return failed
}

// shutdown stops the periodic sweeps and waits for the loop to exit.
func (m *healthMonitor) shutdown() {
	close(m.stop)
	<-m.done
}
