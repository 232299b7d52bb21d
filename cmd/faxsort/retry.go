package main

import (
	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/bootstrap"
)

func newRetryCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "retry",
		Short: "Move failed documents back into the inbound folder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireInbound(c); err != nil {
				return err
			}
			app, err := bootstrap.New(c.cfg, c.logger)
			if err != nil {
				return err
			}

			moved, err := app.Retrier.RetryErrors(cmd.Context())
			if err != nil {
				return err
			}
			c.logger.Info("errors requeued", "moved", moved)
			return nil
		},
	}
}
