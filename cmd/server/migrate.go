package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/actuallystonmai/film-recommender/internal/logging"
)

var migrationsDir string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or drop the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create the films table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigration(cmd.Context(), "create_tables.up.sql", "migrations applied successfully")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Drop the films table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runMigration(cmd.Context(), "create_tables.down.sql", "migrations dropped successfully")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	migrateCmd.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "Directory holding the SQL migration files")
}

func runMigration(ctx context.Context, file, done string) error {
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := execFile(ctx, pool, migrationsDir+"/"+file); err != nil {
		return err
	}
	logging.Info().Msg(done)
	return nil
}

func execFile(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}
