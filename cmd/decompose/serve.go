package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/decompose/internal/adapters/http"
	"github.com/aretw0/decompose/pkg/mode"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the engine over HTTP. Requests are validated against the embedded
OpenAPI document, which is itself served at /openapi.yaml. Prometheus
metrics are exposed at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		modeName, _ := cmd.Flags().GetString("mode")
		delimiter, _ := cmd.Flags().GetString("delimiter")
		m, err := mode.Parse(modeName, delimiter)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stack, err := setup(ctx)
		if err != nil {
			return err
		}
		defer stack.Close()

		engine, err := stack.Engine(m)
		if err != nil {
			return err
		}
		handler, err := httpAdapter.NewHandler(engine,
			httpAdapter.WithMetrics(stack.Metrics.Handler()),
			httpAdapter.WithLogger(stack.Logger),
		)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			stack.Logger.Info("Starting decompose server", "address", srv.Addr, "mode", m.Name())
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			stack.Logger.Info("Shutting down server")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete in %v: %w", 5*time.Second, err)
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("mode", string(mode.NameGeneric), "Mode (hitom, fantom, generic)")
	serveCmd.Flags().String("delimiter", ".", "Sentence delimiter for generic mode")
}
