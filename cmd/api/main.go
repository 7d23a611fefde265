// Package main is the entry point for the dashboard API. It wires
// configuration, logging, the server container, and the HTTP router,
// and exposes serve/migrate/seed subcommands.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/acmehq/dashboard-api/internal/config"
	"github.com/acmehq/dashboard-api/internal/database"
	"github.com/acmehq/dashboard-api/internal/handler"
	"github.com/acmehq/dashboard-api/internal/logger"
	"github.com/acmehq/dashboard-api/internal/middleware"
	"github.com/acmehq/dashboard-api/internal/repository"
	"github.com/acmehq/dashboard-api/internal/router"
	"github.com/acmehq/dashboard-api/internal/server"
	"github.com/acmehq/dashboard-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:   "dashboard-api",
		Short: "Dashboard data API",
	}

	rootCmd.AddCommand(serveCmd(), migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads config and builds the logger stack shared by all
// subcommands.
func bootstrap() (*config.Config, *zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logger service: %w", err)
	}

	log := logger.New(cfg, loggerService)

	return cfg, log, loggerService, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}

			s, err := server.New(cfg, log, loggerService)
			if err != nil {
				return fmt.Errorf("initializing server: %w", err)
			}

			repos := repository.NewRepositories(s.DB.Pool)
			services := service.NewServices(s, repos)
			handlers := handler.NewHandlers(s, services)
			middlewares := middleware.NewMiddlewares(s)

			e := router.New(middlewares, handlers)
			s.SetupHTTPServer(e)

			errCh := make(chan error, 1)
			go func() {
				if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server error: %w", err)
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("shutting down")
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := s.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down: %w", err)
			}

			if loggerService != nil {
				loggerService.Shutdown(10 * time.Second)
			}

			log.Info().Msg("server stopped")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, _, err := bootstrap()
			if err != nil {
				return err
			}

			return database.Migrate(cmd.Context(), log, cfg)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo customers, invoices, and revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, loggerService, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := database.New(cfg, log, loggerService)
			if err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("closing database")
				}
			}()

			if err := database.Seed(cmd.Context(), db.Pool); err != nil {
				return fmt.Errorf("seeding database: %w", err)
			}

			log.Info().Msg("database seeded")
			return nil
		},
	}
}
