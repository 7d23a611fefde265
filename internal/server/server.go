// Package server defines the core Server struct that composes the
// app's main dependencies.
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool
//   - redis client
//   - background job worker (asynq) and the rollup schedule
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/acmehq/dashboard-api/internal/database"
	"github.com/acmehq/dashboard-api/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/acmehq/dashboard-api/internal/logger"
)

// Server is the application container that holds shared resources.
// It is not the HTTP server itself.
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	LoggerService *loggerPkg.LoggerService

	// DB holds the PostgreSQL pool wrapper.
	DB *database.Database

	// Redis backs the dashboard view cache and the job queue.
	Redis *redis.Client

	// Job runs background workers and provides a client for enqueueing.
	Job *job.JobService

	httpServer *http.Server
	monitor    *healthMonitor
}

// New constructs a Server and initializes core dependencies.
//
// It does not start the HTTP server; that is SetupHTTPServer + Start.
// A Redis connection failure logs and continues (the cache is
// best-effort), a job service failure blocks startup.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Msg("Failed to connect to Redis, continuing without Redis")
	}

	jobService := job.NewJobService(logger, cfg)
	jobService.InitHandlers(cfg, logger, db.Pool)

	if err := jobService.Start(); err != nil {
		return nil, err
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Redis:         redisClient,
		Job:           jobService,
	}

	if hc := cfg.Observability.HealthChecks; hc.Enabled {
		server.monitor = newHealthMonitor(hc, logger, server.recordHealthCheckFailure, server.dependencyChecks())
		server.monitor.start()
	}

	return server, nil
}

// dependencyChecks maps the configured health check names onto pings
// against the server's dependencies. Unknown names are skipped.
func (s *Server) dependencyChecks() []dependencyCheck {
	var checks []dependencyCheck
	for _, name := range s.Config.Observability.HealthChecks.Checks {
		switch name {
		case "database":
			checks = append(checks, dependencyCheck{name: name, ping: s.DB.Pool.Ping})
		case "redis":
			checks = append(checks, dependencyCheck{name: name, ping: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			}})
		default:
			s.Logger.Warn().Str("check", name).Msg("unknown health check dependency, skipping")
		}
	}
	return checks
}

func (s *Server) recordHealthCheckFailure(name string, err error) {
	if s.LoggerService == nil || s.LoggerService.GetApplication() == nil {
		return
	}
	s.LoggerService.GetApplication().RecordCustomEvent("DependencyHealthCheckFailed", map[string]interface{}{
		"dependency": name,
		"error":      err.Error(),
	})
}

// SetupHTTPServer configures the internal net/http server with the
// given router and the timeouts from config (stored as seconds).
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server. SetupHTTPServer must have been called.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies:
// health monitor and HTTP server first (finish inflight requests until
// ctx deadline), then job workers, database pool, and the redis client.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.monitor != nil {
		s.monitor.shutdown()
	}

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	if err := s.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}
