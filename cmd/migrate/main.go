package main

// Run database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate down
//   go run ./cmd/migrate version

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"petmatch-backend/internal/shared/config"
	"petmatch-backend/internal/shared/storage/db"
)

var rootCmd = &cobra.Command{
	Use:           "migrate",
	Short:         "Manage the petmatch database schema",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(ctx context.Context, sqlDB *sql.DB) error {
				if err := db.RunMigrations(ctx, sqlDB); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				log.Printf("migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withDB(func(ctx context.Context, sqlDB *sql.DB) error {
				if err := db.RollbackMigration(ctx, sqlDB); err != nil {
					return fmt.Errorf("rollback migration: %w", err)
				}
				log.Printf("rolled back one migration")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: withDB(func(ctx context.Context, sqlDB *sql.DB) error {
				version, err := db.MigrationVersion(ctx, sqlDB)
				if err != nil {
					return fmt.Errorf("read version: %w", err)
				}
				fmt.Println(version)
				return nil
			}),
		},
	)
}

func withDB(fn func(ctx context.Context, sqlDB *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		ctx := cmd.Context()
		opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
		sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer sqlDB.Close()
		return fn(ctx, sqlDB)
	}
}

func main() {
	// With no subcommand the tool applies pending migrations.
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "up")
	}
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}
