package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/drivespace/drivespace/cmd/drivectl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "drivectl",
		Short: "Drivespace admin tasks",
		Long:  "Run administrative tasks against the Drivespace database: migrations and user management.",
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.UserCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
