package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/bootstrap"
	"github.com/jmittelstaedt/faxsort/internal/observability/logging"
)

func newWatchCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Scan the inbound folder on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInbound(c); err != nil {
				return err
			}
			// Long-running mode logs JSON for collection instead of the CLI
			// text handler.
			logger := logging.NewJSONLogger("faxsort", c.cfg.LogLevel)

			app, err := bootstrap.New(c.cfg, logger)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if c.cfg.MetricsAddr != "" {
				startMetricsServer(ctx, app, logger)
			}

			logger.Info("watching inbound folder",
				"dir", c.cfg.InboundDir,
				"interval", c.cfg.ScanInterval.Std().String(),
				"model", c.cfg.Ollama.Model)

			ticker := time.NewTicker(c.cfg.ScanInterval.Std())
			defer ticker.Stop()

			for {
				results, err := app.Scanner.ScanAndProcess(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) {
						break
					}
					logger.Error("scan failed", "error", err)
				}
				for _, res := range results {
					if res.Status.IsError() {
						logger.Warn("document failed",
							"file", res.Original, "status", res.Status, "details", res.Details)
						continue
					}
					logger.Info("document filed",
						"file", res.Original, "new_name", res.NewName,
						"category", res.Classification.Category)
				}

				select {
				case <-ctx.Done():
					logger.Info("shutting down")
					return nil
				case <-ticker.C:
				}
			}

			logger.Info("shutting down")
			return nil
		},
	}
}

func startMetricsServer(ctx context.Context, app *bootstrap.App, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	server := &http.Server{
		Addr:              app.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
}
