package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	httpadapter "traffic-controller/internal/adapter/http"
	"traffic-controller/internal/adapter/ledgerfile"
	"traffic-controller/internal/adapter/platform"
	"traffic-controller/internal/adapter/postgres"
	"traffic-controller/internal/adapter/usecase"
	"traffic-controller/internal/config"
	"traffic-controller/internal/db"
)

// main is the entry point of the traffic controller. Every subcommand loads
// configuration from the environment and logs through slog.
func main() {
	root := &cobra.Command{
		Use:           "traffic-controller",
		Short:         "Drives campaign activation and budgets on the ad platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		serveCommand(),
		reconcileCommand(),
		migrateCommand(),
		seedCommand(),
	)
	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	logger := cfg.Log.NewLogger(os.Stdout).With(slog.String("env", cfg.Env))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// newController wires the controller over the store, the platform client and
// the optional file journal.
func newController(cfg config.Config, store *postgres.Store, logger *slog.Logger) (*usecase.Controller, error) {
	opts := []usecase.ControllerOption{
		usecase.WithWorkers(cfg.Controller.Workers),
		usecase.WithPassTimeout(cfg.Controller.PassTimeout),
	}
	if cfg.Controller.LedgerDir != "" {
		journal, err := ledgerfile.New(cfg.Controller.LedgerDir, time.Now)
		if err != nil {
			return nil, fmt.Errorf("open ledger dir: %w", err)
		}
		opts = append(opts, usecase.WithJournal(journal))
	}
	client := platform.NewClient(cfg.Platform, logger)
	return usecase.NewController(store, client, logger, opts...), nil
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and the controller ticker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}

			// Optionally run migrations if configured.
			if cfg.Psql.RunMigrations {
				version, err := db.Migrate(cfg.Psql.Addr.String())
				if err != nil {
					logger.Error("migration error", slog.Any("error", err))
				} else {
					logger.Info("migrations applied successfully", slog.Uint64("version", uint64(version)))
				}
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			pool, err := db.NewPostgresPool(ctx, cfg.Psql)
			if err != nil {
				return fmt.Errorf("database connection: %w", err)
			}
			defer pool.Close()

			store := postgres.NewStore(pool)
			controller, err := newController(cfg, store, logger)
			if err != nil {
				return err
			}
			handler := httpadapter.NewHandler(
				controller,
				usecase.NewSyncStateService(store),
				usecase.NewURLService(store, logger),
				logger,
			)
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
				Handler:           handler.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server: %w", err)
				}
				return nil
			})
			if cfg.Controller.Enabled {
				g.Go(func() error {
					controller.Run(ctx, cfg.Controller.Interval)
					return nil
				})
			}
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("server shutdown error", slog.Any("error", err))
					return err
				}
				logger.Info("server gracefully stopped")
				return nil
			})
			return g.Wait()
		},
	}
}

func reconcileCommand() *cobra.Command {
	var campaignID int64
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run a single controller pass and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			pool, err := db.NewPostgresPool(ctx, cfg.Psql)
			if err != nil {
				return fmt.Errorf("database connection: %w", err)
			}
			defer pool.Close()

			controller, err := newController(cfg, postgres.NewStore(pool), logger)
			if err != nil {
				return err
			}
			if campaignID > 0 {
				return controller.ReconcileCampaign(ctx, campaignID)
			}
			return controller.RunPass(ctx)
		},
	}
	cmd.Flags().Int64Var(&campaignID, "campaign", 0, "reconcile only this campaign id")
	return cmd
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			version, err := db.Migrate(cfg.Psql.Addr.String())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			logger.Info("migrations applied successfully", slog.Uint64("version", uint64(version)))
			return nil
		},
	}
}

func seedCommand() *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo campaigns, URLs and child campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			pool, err := db.NewPostgresPool(cmd.Context(), cfg.Psql)
			if err != nil {
				return fmt.Errorf("database connection: %w", err)
			}
			defer pool.Close()

			var r *rand.Rand
			if seed != 0 {
				r = rand.New(rand.NewSource(seed))
			}
			if err = db.Seed(cmd.Context(), pool, r); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			logger.Info("seed data inserted")
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	return cmd
}
