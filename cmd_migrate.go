package main

import (
	"github.com/Kariqs/aroena-api/initializers"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := bootstrap(); err != nil {
			return err
		}
		defer initializers.CloseDB()

		return initializers.SyncDatabase()
	},
}
