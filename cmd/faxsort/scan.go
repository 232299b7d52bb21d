package main

import (
	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/bootstrap"
)

func newScanCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Process every PDF in the inbound folder once",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInbound(c); err != nil {
				return err
			}
			app, err := bootstrap.New(c.cfg, c.logger)
			if err != nil {
				return err
			}

			results, err := app.Scanner.ScanAndProcess(cmd.Context())
			failed := 0
			for _, res := range results {
				if res.Status.IsError() {
					failed++
					c.logger.Warn("document failed",
						"file", res.Original, "status", res.Status, "details", res.Details)
					continue
				}
				c.logger.Info("document filed",
					"file", res.Original, "new_name", res.NewName,
					"category", res.Classification.Category)
			}
			summarize(c.logger, len(results), failed)
			return err
		},
	}
}
