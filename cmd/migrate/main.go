package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/studentledger/internal/infrastructure/config"
	"github.com/iho/studentledger/internal/infrastructure/logger"
	"github.com/iho/studentledger/internal/infrastructure/postgres"
	"github.com/iho/studentledger/internal/infrastructure/sqlite"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		cfg *config.Config
		log zerolog.Logger
	)

	rootCmd := &cobra.Command{
		Use:           "studentledger-migrate",
		Short:         "Apply or roll back store migrations",
		Long:          `Runs schema migrations against the store selected by STORE_DRIVER.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			cfg = loaded
			log = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
			return nil
		},
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrateUp(cfg, log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store migrated up\n", cfg.StoreDriver)
			return nil
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := migrateDown(cfg, log); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s store rolled back one migration\n", cfg.StoreDriver)
			return nil
		},
	}

	rootCmd.AddCommand(upCmd, downCmd)

	return rootCmd
}

func migrateUp(cfg *config.Config, log zerolog.Logger) error {
	if cfg.StoreDriver == config.DriverSQLite {
		return sqlite.RunMigrations(cfg.SQLitePath, log)
	}
	return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
}

func migrateDown(cfg *config.Config, log zerolog.Logger) error {
	if cfg.StoreDriver == config.DriverSQLite {
		return sqlite.RunMigrationsDown(cfg.SQLitePath, log)
	}
	return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
}
