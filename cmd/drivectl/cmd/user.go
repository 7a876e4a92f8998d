package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drivespace/drivespace/internal/config"
	"github.com/drivespace/drivespace/internal/db"
	"github.com/drivespace/drivespace/internal/repository"
	"github.com/drivespace/drivespace/internal/service"
)

func UserCmd() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var email, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer func() { _ = database.Close() }()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			authService := service.NewAuthService(
				repository.NewUserRepository(database),
				cfg.JWTSecret,
				cfg.IsProduction(),
				cfg.JWTExpiry,
			)
			user, err := authService.Register(email, password)
			if err != nil {
				return err
			}

			fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "email address")
	createCmd.Flags().StringVar(&password, "password", "", "password (min 12 characters)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	return userCmd
}
