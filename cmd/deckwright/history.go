package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/storage"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		kind  string
		limit int
		show  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved analyses",
		Long: `Lists analyses previously saved with --save. Use --show with an
analysis ID to print its stored payload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := a.database()
			if err != nil {
				return err
			}
			if db == nil {
				return fmt.Errorf("history requires the local cache, enable it in the config")
			}
			repo := storage.NewAnalysisRepository(db)

			if show != "" {
				analysis, err := repo.Get(ctx, show)
				if err != nil {
					return err
				}
				if analysis == nil {
					return fmt.Errorf("analysis not found: %s", show)
				}
				var pretty json.RawMessage = analysis.Payload
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(pretty)
			}

			analyses, err := repo.ListRecent(ctx, storage.AnalysisKind(kind), limit)
			if err != nil {
				return err
			}
			if len(analyses) == 0 {
				fmt.Println("No saved analyses.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tDECK\tFORMAT\tCREATED")
			for _, analysis := range analyses {
				name := analysis.DeckName
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					analysis.ID, analysis.Kind, name, analysis.DeckFormat,
					analysis.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by analysis kind: manabase, curve, or synergy")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of analyses to list")
	cmd.Flags().StringVar(&show, "show", "", "Print the stored payload for an analysis ID")

	return cmd
}
