package main

import (
	"errors"
	"fmt"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/services"
	"github.com/spf13/cobra"
)

var (
	adminEmail    string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminEmail == "" || adminPassword == "" {
			return errors.New("--email and --password are required")
		}
		if len(adminPassword) < 6 {
			return errors.New("password must be at least 6 characters")
		}

		if _, err := bootstrap(); err != nil {
			return err
		}
		defer initializers.CloseDB()

		if err := initializers.SyncDatabase(); err != nil {
			return err
		}

		admin, err := services.NewAdminService(initializers.DB, nil, nil).
			CreateAdmin(cmd.Context(), adminEmail, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %d\n", admin.Email, admin.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
}
