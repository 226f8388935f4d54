// Command migrate applies or rolls back the contact and indexing tables.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/config"
	"github.com/wackyworksdigital/wearewacky-com-sub000/internal/migrate"
	"github.com/wackyworksdigital/wearewacky-com-sub000/pkg/logger"
)

func openMigrator() (*migrate.Migrator, func(), error) {
	cfg, err := config.NewConfig(logger.NewLogger())
	if err != nil {
		return nil, nil, err
	}

	db, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	zl, err := migrate.NewZapLogger(cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		_ = zl.Sync()
		_ = db.Close()
	}
	return migrate.NewMigrator(db, zl), cleanup, nil
}

func run(fn func(ctx context.Context, m *migrate.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		m, cleanup, err := openMigrator()
		if err != nil {
			return err
		}
		defer cleanup()
		return fn(cmd.Context(), m)
	}
}

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the website database schema",
		SilenceUsage: true,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: run(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: run(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print applied and pending migrations",
			RunE: run(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: run(func(ctx context.Context, m *migrate.Migrator) error {
				v, err := m.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			}),
		},
	)

	if err := root.Execute(); err != nil {
		slog.Error("migrate failed", logger.Error(err))
		os.Exit(1)
	}
}
