// Package serve implements the arkiv serve command.
package serve

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/ahvenlahti/arkiv/internal/api"
	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/datastore"
	"github.com/ahvenlahti/arkiv/internal/logging"
	"github.com/ahvenlahti/arkiv/internal/observability"
)

const shutdownTimeout = 30 * time.Second

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the arkiv HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	cmd.Flags().StringVarP(&settings.WebServer.Port, "port", "p", settings.WebServer.Port, "Port for the HTTP API server")

	return cmd
}

func runServer(settings *conf.Settings) error {
	store := datastore.New(settings)
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open datastore: %w", err)
	}
	defer store.Close()

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("failed to set up metrics: %w", err)
	}
	store.SetMetrics(metrics.Retention)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	if settings.WebServer.Debug {
		e.Use(middleware.Logger())
	}

	controller := api.New(e, store, settings, metrics)
	defer controller.Shutdown()

	serverErrors := make(chan error, 1)
	go func() {
		addr := ":" + settings.WebServer.Port
		logging.Info("HTTP API server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logging.Info("Received signal, shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logging.Error("Graceful shutdown failed, forcing close", "error", err)
			if err := e.Close(); err != nil {
				return err
			}
		}

		logging.Info("Shutdown complete")
	}

	return nil
}
