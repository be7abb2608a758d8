package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/config"
	"github.com/gouji-dev/gouji/internal/api"
	"github.com/gouji-dev/gouji/internal/core"
	"github.com/gouji-dev/gouji/internal/health"
	"github.com/gouji-dev/gouji/internal/observability"
	"github.com/gouji-dev/gouji/internal/store"
	"github.com/gouji-dev/gouji/internal/store/memory"
	"github.com/gouji-dev/gouji/internal/store/postgres"
)

// Application bundles every component of the running game server.
type Application struct {
	cfg           *config.Config
	obs           *observability.Manager
	matchStore    store.MatchStore
	manager       *core.GameManager
	healthChecker *health.Checker
	router        *api.Router
	logger        zerolog.Logger
}

// NewApplication wires the application from configuration.
func NewApplication(cfg *config.Config, verbose bool) (*Application, error) {
	obs, err := buildObservability(cfg, verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}

	observability.SetGlobalLogger(obs.Logging())

	app := &Application{
		cfg:    cfg,
		obs:    obs,
		logger: obs.Logger(),
	}

	matchStore, err := buildMatchStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.matchStore = matchStore

	app.manager = core.NewGameManager(matchStore, obs, core.ManagerOptions{
		DefaultStrategy: cfg.Game.DefaultStrategy,
		MaxLiveGames:    cfg.Game.MaxLiveGames,
	})

	healthChecker := health.NewChecker(5 * time.Second)
	healthChecker.RegisterStore("match_store", matchStore)
	healthChecker.StartPeriodicChecks(context.Background(), 30*time.Second)
	app.healthChecker = healthChecker

	app.router = api.NewRouter(app.manager, healthChecker, obs)

	app.logger.Info().
		Str("store", cfg.Store.Type).
		Str("strategy", cfg.Game.DefaultStrategy).
		Msg("Application initialized")
	return app, nil
}

// Handler returns the HTTP handler for the application.
func (app *Application) Handler() http.Handler {
	return app.router.SetupRoutes()
}

// Close shuts down all application components.
func (app *Application) Close() error {
	app.logger.Info().Msg("Closing application components")

	var errs []error

	if app.matchStore != nil {
		if err := app.matchStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("match store close failed: %w", err))
		}
	}

	if app.obs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.obs.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("observability shutdown failed: %w", err))
		}
	}

	if len(errs) > 0 {
		for _, err := range errs {
			app.logger.Error().Err(err).Msg("Component close failed")
		}
		return fmt.Errorf("application close failed with %d errors", len(errs))
	}

	return nil
}

func buildObservability(cfg *config.Config, verbose bool) (*observability.Manager, error) {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}

	return observability.NewManager(observability.Config{
		Logging: observability.LoggingConfig{
			Level:  observability.LogLevel(level),
			Format: observability.LogFormat(cfg.Logging.Format),
			Output: cfg.Logging.Output,
		},
		Metrics: observability.MetricsConfig{
			Enabled: cfg.Metrics.Enabled,
			Path:    cfg.Metrics.Path,
		},
		Tracing: observability.TracingConfig{
			Enabled:     cfg.Tracing.Enabled,
			JaegerURL:   cfg.Tracing.JaegerURL,
			SampleRate:  cfg.Tracing.SampleRate,
			Environment: cfg.Environment,
		},
	})
}

func buildMatchStore(cfg *config.Config, logger zerolog.Logger) (store.MatchStore, error) {
	switch cfg.Store.Type {
	case "postgres":
		logger.Info().Msg("Connecting to PostgreSQL")
		pgStore, err := postgres.NewMatchStore(cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := pgStore.Ping(ctx); err != nil {
			return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
		}

		if cfg.Database.MigrateOnStart {
			logger.Info().Msg("Running database migrations")
			migrator := postgres.NewMigrator(pgStore.GetPool())
			if err := migrator.Run(ctx); err != nil {
				return nil, fmt.Errorf("migration failed: %w", err)
			}
		}

		return pgStore, nil
	case "memory":
		return memory.NewMatchStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.Store.Type)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, bool, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, verbose, nil
}
