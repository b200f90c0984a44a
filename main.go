package main

import (
	"fmt"
	"os"

	"github.com/Kariqs/aroena-api/config"
	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "aroena-api",
	Short: "Aroena booking API",
	Long:  "Backend for Aroena room bookings and food orders. Runs the HTTP server when no command is given.",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createAdminCmd)
}

// bootstrap loads configuration and opens the database. Every command needs both.
func bootstrap() (*config.Config, error) {
	initializers.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	utils.InitLogger(cfg.App.Env)

	if err := initializers.ConnectToDB(cfg.Database, !cfg.IsProduction()); err != nil {
		return nil, err
	}
	return cfg, nil
}
