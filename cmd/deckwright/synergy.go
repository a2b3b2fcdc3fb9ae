package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/export"
	"github.com/deckwright/deckwright/internal/storage"
	"github.com/deckwright/deckwright/internal/synergy"
)

func newSynergyCmd(a *app) *cobra.Command {
	var (
		minThemeCards int
		explain       bool
		save          bool
	)

	cmd := &cobra.Command{
		Use:   "synergy <decklist>",
		Short: "Detect themes and card synergies in a decklist",
		Long: `Scans oracle text and type lines for deck themes (tokens, graveyard,
tribal, and so on), classifies cards as enablers or payoffs, and maps
the synergy edges between them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			list, err := a.loadDeck(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.hydrate(ctx, list); err != nil {
				return err
			}

			detector := synergy.NewDetector()
			if minThemeCards > 0 {
				detector.MinThemeCards = minThemeCards
			} else if a.cfg.Synergy.MinThemeCards > 0 {
				detector.MinThemeCards = a.cfg.Synergy.MinThemeCards
			}

			matrix := detector.Analyze(list)

			if err := export.WriteSynergy(os.Stdout, export.FormatMarkdown, matrix); err != nil {
				return err
			}

			if explain {
				explanation, err := a.explanationGenerator().ExplainSynergy(ctx, matrix)
				if err != nil {
					a.logger.Warn("explanation unavailable", "error", err)
				} else {
					fmt.Printf("\n## Explanation\n\n%s\n", explanation.Text)
				}
			}

			if a.exportPath != "" {
				outFormat, err := a.outputFormat()
				if err != nil {
					return err
				}
				exporter := export.NewExporter(export.Options{
					Format:    outFormat,
					FilePath:  a.exportPath,
					Overwrite: a.overwrite,
				})
				if err := exporter.Synergy(matrix); err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported to %s\n", a.exportPath)
			}

			if save {
				a.saveAnalysis(ctx, storage.AnalysisSynergy, list.Name, list.Format, matrix)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&minThemeCards, "min-theme-cards", 0, "Minimum cards for a theme to register (default: from config)")
	cmd.Flags().BoolVar(&a.moxfield, "moxfield", false, "Treat the argument as a Moxfield deck URL or ID")
	cmd.Flags().BoolVar(&explain, "explain", false, "Add a natural language explanation of the synergy report")
	cmd.Flags().BoolVar(&save, "save", false, "Save the analysis to the local database")

	return cmd
}
