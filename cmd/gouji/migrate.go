package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gouji-dev/gouji/internal/store/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE:  runMigrate,
	}

	cmd.Flags().Bool("reset", false, "Drop the schema and reapply every migration")

	return cmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pgStore, err := postgres.NewMatchStore(cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pgStore.Close()

	migrator := postgres.NewMigrator(pgStore.GetPool())

	reset, _ := cmd.Flags().GetBool("reset")
	if reset {
		fmt.Println("dropping schema before migrating")
		if err := migrator.Reset(context.Background()); err != nil {
			return fmt.Errorf("schema reset failed: %w", err)
		}
	}

	if err := migrator.Run(context.Background()); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Println("database migrations completed")
	return nil
}
