package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fueldepot/depot"
	"github.com/fueldepot/depot/internal/config"
	"github.com/fueldepot/depot/internal/logging"
	"github.com/fueldepot/depot/internal/session"
	"github.com/fueldepot/depot/internal/store"
	"github.com/fueldepot/depot/internal/view"
	"github.com/fueldepot/depot/internal/web"
)

var (
	flagConfig string
	flagDB     string
	flagFormat string
)

// errorHandled is set by outputError so main() doesn't double-print.
var errorHandled bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errorHandled {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "depot",
	Short:         "Browse generated PHP API documentation",
	Long:          "Depot serves the Fuel API reference from a database of parsed docblocks, grouped by version and package.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return validateFormat(flagFormat)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "database DSN (overrides config; a file path for sqlite3)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "json", "output format: json|text")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(showCmd)
}

// loadConfig reads the configuration and applies the --db override.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDB != "" {
		cfg.Database.DSN = flagDB
	}
	return cfg, nil
}

// openStore opens the configured database.
func openStore(cfg *config.Config) (*store.Store, error) {
	if cfg.Database.Driver == store.DriverSQLite {
		if _, err := os.Stat(cfg.Database.DSN); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found: %s (run 'depot migrate' first)", cfg.Database.DSN)
		}
	}
	return store.Open(cfg.Database.Driver, cfg.Database.DSN)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the API browser over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.Setup(os.Stderr, cfg.Log.Level, cfg.Log.Color)

	s, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()
	if err := s.Migrate(); err != nil {
		return fmt.Errorf("migrating store: %w", err)
	}

	renderer, err := view.New()
	if err != nil {
		return err
	}
	browser := depot.New(s, depot.WithCache(cfg.Cache.Capacity(), cfg.Cache.TTL))
	sessions := session.NewStore(cfg.Session.Size, cfg.Session.TTL, session.WithSecureCookie(cfg.Session.Secure))
	srv := web.NewServer(cfg.Addr, web.NewRouter(browser, renderer, sessions, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	start := time.Now()
	if err := s.Migrate(); err != nil {
		return fmt.Errorf("migrating: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Migrated %s in %s\n", cfg.Database.DSN, time.Since(start).Round(time.Millisecond))
	return nil
}
