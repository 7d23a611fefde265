// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with
// asynq.Client and processed by workers run by asynq.Server. A cron
// scheduler enqueues the periodic revenue rollup.
package job

import (
	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue), the worker server, and
// the cron scheduler for periodic tasks.
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	cron   *cron.Cron
	logger *zerolog.Logger

	rollupSchedule string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights distribute the worker pool by ratio: critical 6,
// default 3, low 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client:         client,
		server:         server,
		cron:           cron.New(),
		logger:         logger,
		rollupSchedule: cfg.Dashboard.RollupSchedule,
	}
}

// Start launches the worker server in the background and starts the
// cron scheduler that periodically enqueues the revenue rollup.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskInvoiceReminder, j.handleInvoiceReminderTask)
	mux.HandleFunc(TaskRevenueRollup, j.handleRevenueRollupTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.rollupSchedule, j.enqueueScheduledRollup); err != nil {
		return err
	}
	j.cron.Start()

	return nil
}

// enqueueScheduledRollup pushes a rollup task from the cron schedule.
func (j *JobService) enqueueScheduledRollup() {
	task, err := NewRevenueRollupTask()
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to build scheduled revenue rollup task")
		return
	}
	if _, err := j.Client.Enqueue(task); err != nil {
		j.logger.Error().Err(err).Msg("Failed to enqueue scheduled revenue rollup")
		return
	}
	j.logger.Info().Msg("Enqueued scheduled revenue rollup")
}

// Stop gracefully stops the scheduler and the job server, then closes
// client resources.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.cron.Stop()
	j.server.Shutdown()
	j.Client.Close()
}
