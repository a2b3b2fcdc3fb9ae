package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/llm"
	"github.com/deckwright/deckwright/internal/storage"
)

func newStatusCmd(a *app) *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show card cache and LLM status",
		Long: `Reports the state of the local card cache and, when LLM explanations
are enabled, whether the configured Ollama model is reachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := a.database()
			if err != nil {
				return err
			}
			if db == nil {
				fmt.Println("Card cache: disabled")
			} else {
				ttl, _ := a.cfg.GetCacheTTL()
				cache := storage.NewCardCache(db, ttl)
				count, err := cache.Count(ctx)
				if err != nil {
					return fmt.Errorf("failed to read card cache: %w", err)
				}
				fmt.Printf("Card cache: %d cards (TTL %s)\n", count, ttl)
			}

			client := a.ollamaClient()
			if client == nil {
				fmt.Println("LLM explanations: disabled")
				return nil
			}

			if wait > 0 {
				fmt.Fprintf(os.Stderr, "Waiting for model %s...\n", client.GetModel())
				generator := llm.NewExplanationGenerator(client, nil)
				if err := generator.WaitForModel(ctx, wait); err != nil {
					return fmt.Errorf("model %s did not become ready: %w", client.GetModel(), err)
				}
			}

			status := client.CheckAvailability(ctx)
			switch {
			case !status.Available:
				fmt.Printf("Ollama: unreachable (%s)\n", status.Error)
			case !status.ModelReady:
				fmt.Printf("Ollama: %s, model %s not pulled\n", status.Version, client.GetModel())
			default:
				fmt.Printf("Ollama: %s, model %s ready\n", status.Version, client.GetModel())
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Poll at this interval until the model is ready (e.g. 2s)")

	return cmd
}
