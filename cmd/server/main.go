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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/diewo77/go-photodesk/auth"
	"github.com/diewo77/go-photodesk/internal/backend"
	"github.com/diewo77/go-photodesk/internal/config"
	"github.com/diewo77/go-photodesk/internal/db"
	"github.com/diewo77/go-photodesk/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "photodesk",
		Short:        "Back office for a photography studio",
		SilenceUsage: true,
		RunE:         runServe,
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			Args:  cobra.NoArgs,
			RunE:  runServe,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Bring the self-hosted database schema up to date and exit",
			Args:  cobra.NoArgs,
			RunE:  runMigrate,
		},
		newGuardCmd(),
	)
	return root
}

// newGuardCmd prints what the route guard decides for a path.
func newGuardCmd() *cobra.Command {
	var cookie bool
	cmd := &cobra.Command{
		Use:   "guard <path>",
		Short: "Show whether a path needs a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), auth.Decide(args[0], cookie))
			return err
		},
	}
	cmd.Flags().BoolVar(&cookie, "cookie", false, "pretend the session cookie is present")
	return cmd
}

// setup loads the environment and configuration and builds the logger.
func setup() (*config.Config, logger.Logger, error) {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.NewLogger(cfg.App.LogLevel, cfg.App.Dev), nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.App.Backend != config.BackendLocal {
		return errors.New("migrate: only the local backend owns its schema")
	}
	dbConn, err := db.Connect(cfg.Database, cfg.App.Dev, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(dbConn, cfg.Database, cfg.App.Migrations); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("Migrations completed successfully")
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	var dbConn *gorm.DB
	if cfg.App.Backend == config.BackendLocal {
		if dbConn, err = db.Connect(cfg.Database, cfg.App.Dev, log); err != nil {
			return err
		}
		if err := db.Migrate(dbConn, cfg.Database, cfg.App.Migrations); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	// A configuration fault is kept: the app starts and shows setup help.
	b, err := backend.New(cfg, dbConn, log)
	if b == nil {
		return err
	}

	app := NewApp(cfg, b, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go app.pruneSessions(ctx, cfg.Session.CacheTTL)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]any{"port": cfg.Server.Port, "dev": cfg.App.Dev, "backend": b.Name}).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithField("error", err.Error()).Error("Error during shutdown")
		return err
	}
	log.Info("Server stopped gracefully")
	return nil
}
