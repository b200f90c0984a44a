package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kariqs/aroena-api/initializers"
	"github.com/Kariqs/aroena-api/routes"
	"github.com/Kariqs/aroena-api/utils"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	defer initializers.CloseDB()

	if err := initializers.SyncDatabase(); err != nil {
		return err
	}
	if err := initializers.ConnectToRedis(ctx, cfg.Redis); err != nil {
		return err
	}
	defer initializers.CloseRedis()

	initializers.SetupAuth(cfg.JWT, cfg.Redis)
	if err := initializers.SetupStorage(ctx, cfg.Storage); err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           routes.SetupRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Info("Server listening", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	utils.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
