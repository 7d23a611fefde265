package middleware

import (
	"time"

	"github.com/acmehq/dashboard-api/internal/server"
)

// QueryTelemetry records dashboard query timings that exceed the
// configured slow-query threshold as New Relic custom events, so slow
// reads show up in APM without log diving.
type QueryTelemetry struct {
	server *server.Server
}

// NewQueryTelemetry constructs a QueryTelemetry recorder.
func NewQueryTelemetry(s *server.Server) *QueryTelemetry {
	return &QueryTelemetry{
		server: s,
	}
}

// RecordSlowQuery emits a SlowDashboardQuery custom event when the
// duration crosses the threshold. No-op when New Relic is disabled.
func (q *QueryTelemetry) RecordSlowQuery(operation string, duration time.Duration) {
	if q == nil || q.server == nil {
		return
	}

	threshold := q.server.Config.Observability.Logging.SlowQueryThreshold
	if threshold <= 0 || duration < threshold {
		return
	}

	q.server.Logger.Warn().
		Str("operation", operation).
		Dur("duration", duration).
		Msg("slow dashboard query")

	if q.server.LoggerService != nil && q.server.LoggerService.GetApplication() != nil {
		q.server.LoggerService.GetApplication().RecordCustomEvent("SlowDashboardQuery", map[string]interface{}{
			"operation":   operation,
			"duration_ms": duration.Milliseconds(),
		})
	}
}
