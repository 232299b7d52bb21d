package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmittelstaedt/faxsort/internal/infrastructure/llm/ollama"
)

func newModelsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models served by the configured Ollama endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := ollama.New(ollama.Config{
				BaseURL: c.cfg.Ollama.URL,
				Model:   c.cfg.Ollama.Model,
			}, nil)

			names, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("no models installed")
				return nil
			}
			for _, name := range names {
				marker := " "
				if name == c.cfg.Ollama.Model {
					marker = "*"
				}
				fmt.Printf("%s %s\n", marker, name)
			}
			return nil
		},
	}
}
