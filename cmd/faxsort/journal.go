package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/export"
	"github.com/jmittelstaedt/faxsort/internal/infrastructure/journal"
)

func newLogCommand(c *cli) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the processing journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := journal.NewStore(c.cfg.JournalPath, c.cfg.JournalMaxEntries)
			if clear {
				if err := store.Clear(); err != nil {
					return err
				}
				c.logger.Info("journal cleared", "path", c.cfg.JournalPath)
				return nil
			}

			entries, err := store.Entries()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("journal is empty")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ZEITSTEMPEL\tSTATUS\tORIGINAL\tNEUER NAME")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Status, e.Original, e.NewName)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "empty the journal instead of printing it")
	return cmd
}

func newExportCommand(c *cli) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the processing journal as an XLSX workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := journal.NewStore(c.cfg.JournalPath, c.cfg.JournalMaxEntries)
			entries, err := store.Entries()
			if err != nil {
				return err
			}

			data, err := export.JournalXLSX(entries)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			c.logger.Info("journal exported", "path", outPath, "entries", len(entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "verarbeitung.xlsx", "output file")
	return cmd
}
