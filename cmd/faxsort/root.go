package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/config"
	"github.com/jmittelstaedt/faxsort/internal/observability/logging"
)

// cli carries the state shared by all subcommands, loaded once in the root
// command's PersistentPreRunE.
type cli struct {
	configPath string
	inboundDir string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	cmd := &cobra.Command{
		Use:           "faxsort",
		Short:         "Classify and file incoming fax PDFs with a local vision model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			if c.inboundDir != "" {
				cfg.InboundDir = c.inboundDir
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}
			c.cfg = cfg
			c.logger = logging.NewTextLogger(cfg.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&c.configPath, "config", "faxsort.yaml", "path to the configuration file")
	cmd.PersistentFlags().StringVarP(&c.inboundDir, "dir", "d", "", "inbound fax folder (overrides config)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newScanCommand(c),
		newWatchCommand(c),
		newRetryCommand(c),
		newLogCommand(c),
		newExportCommand(c),
		newModelsCommand(c),
	)

	return cmd
}

func summarize(logger *slog.Logger, processed, failed int) {
	if failed > 0 {
		logger.Warn("scan finished with failures", "processed", processed, "failed", failed)
		return
	}
	logger.Info("scan finished", "processed", processed)
}

func requireInbound(c *cli) error {
	if c.cfg.InboundDir == "" {
		return fmt.Errorf("no inbound folder: set --dir or inbound_dir in %s", c.configPath)
	}
	return nil
}
