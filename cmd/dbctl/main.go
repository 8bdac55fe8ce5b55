package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"book-loan-backend/internal/config"
	"book-loan-backend/internal/logger"
	"book-loan-backend/internal/repository/postgres"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dbctl",
		Short:         "Manage the book loan database",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.dev.yaml", "Path to configuration file")

	root.AddCommand(
		&cobra.Command{
			Use:   "create-db",
			Short: "Create the application database",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMaintenanceDB(cmd.Context(), func(ctx context.Context, db *sql.DB, cfg *config.Config) error {
					return postgres.CreateDatabase(ctx, db, cfg.Database.Database)
				})
			},
		},
		&cobra.Command{
			Use:   "drop-db",
			Short: "Drop the application database",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withMaintenanceDB(cmd.Context(), func(ctx context.Context, db *sql.DB, cfg *config.Config) error {
					return postgres.DropDatabase(ctx, db, cfg.Database.Database)
				})
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the books, members and borrowings tables",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAppDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
					return postgres.Migrate(ctx, db)
				})
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the sample books and members",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAppDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
					return postgres.Seed(ctx, db)
				})
			},
		},
		&cobra.Command{
			Use:   "truncate",
			Short: "Delete every borrowing",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withAppDB(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
					return postgres.NewBorrowingRepository(db).DeleteAll(ctx)
				})
			},
		},
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func withMaintenanceDB(ctx context.Context, fn func(context.Context, *sql.DB, *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := open(ctx, cfg.GetMaintenanceConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(ctx, db, cfg)
}

func withAppDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := open(ctx, cfg.GetDatabaseConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()
	if err := fn(ctx, db); err != nil {
		logger.Error("Command failed", "error", err)
		return err
	}
	logger.Info("Command completed")
	return nil
}
