package middleware

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/rs/zerolog"
)

func newTestQueryTelemetry(threshold time.Duration, out *bytes.Buffer) *QueryTelemetry {
	logger := zerolog.New(out)
	return NewQueryTelemetry(&server.Server{
		Config: &config.Config{
			Observability: &config.ObservabilityConfig{
				Logging: config.LoggingConfig{SlowQueryThreshold: threshold},
			},
		},
		Logger: &logger,
	})
}

func TestRecordSlowQueryAboveThreshold(t *testing.T) {
	var out bytes.Buffer
	telemetry := newTestQueryTelemetry(100*time.Millisecond, &out)

	telemetry.RecordSlowQuery("dashboard_cards", 250*time.Millisecond)

	logged := out.String()
	if !strings.Contains(logged, "slow dashboard query") {
		t.Errorf("expected a slow query warning, got %q", logged)
	}
	if !strings.Contains(logged, "dashboard_cards") {
		t.Errorf("expected the operation name in the log line, got %q", logged)
	}
}

func TestRecordSlowQueryBelowThreshold(t *testing.T) {
	var out bytes.Buffer
	telemetry := newTestQueryTelemetry(100*time.Millisecond, &out)

	telemetry.RecordSlowQuery("dashboard_cards", 10*time.Millisecond)

	if out.Len() != 0 {
		t.Errorf("fast query should not be logged, got %q", out.String())
	}
}

func TestRecordSlowQueryDisabledThreshold(t *testing.T) {
	var out bytes.Buffer
	telemetry := newTestQueryTelemetry(0, &out)

	telemetry.RecordSlowQuery("dashboard_revenue", time.Second)

	if out.Len() != 0 {
		t.Errorf("zero threshold disables recording, got %q", out.String())
	}
}

func TestRecordSlowQueryNilRecorder(t *testing.T) {
	var telemetry *QueryTelemetry

	// Handlers built without a server in tests carry a nil recorder.
	telemetry.RecordSlowQuery("dashboard_cards", time.Second)
	NewQueryTelemetry(nil).RecordSlowQuery("dashboard_cards", time.Second)
}
