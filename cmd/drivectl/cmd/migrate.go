package cmd

import (
	"github.com/spf13/cobra"

	"github.com/drivespace/drivespace/internal/config"
	"github.com/drivespace/drivespace/internal/db"
)

func MigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			return db.MigrateDown(database.DB, cfg.DBDriver)
		},
	}

	migrateCmd.AddCommand(upCmd)
	migrateCmd.AddCommand(downCmd)
	return migrateCmd
}
