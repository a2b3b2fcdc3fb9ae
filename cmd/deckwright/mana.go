package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/curve"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/export"
	"github.com/deckwright/deckwright/internal/storage"
)

func newManaCmd(a *app) *cobra.Command {
	var (
		lands      int
		formatFlag string
		algorithm  string
		explain    bool
		save       bool
	)

	cmd := &cobra.Command{
		Use:   "mana <decklist>",
		Short: "Recommend a mana base for a decklist",
		Long: `Analyzes a decklist's colored mana requirements and recommends a land
split. The decklist can be a local file or a Moxfield URL.`,
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

			analysis := curve.Analyze(list)

			format, err := a.resolveFormat(formatFlag, func() deck.Format {
				return curve.DetectFormat(list)
			})
			if err != nil {
				return err
			}
			algo, err := a.resolveAlgorithm(algorithm)
			if err != nil {
				return err
			}

			targetLands, source := curve.DetermineLandCount(list, lands, a.excludeLands || list.ExcludesLands)

			base := curve.CalculateManaBase(analysis, list, targetLands, format, algo)
			analysis.ManaBase = base
			analysis.TargetLands = targetLands
			analysis.LandSource = &source

			if err := export.WriteManaBase(os.Stdout, export.FormatMarkdown, analysis); err != nil {
				return err
			}

			if explain {
				explanation, err := a.explanationGenerator().ExplainManaBase(ctx, base, analysis)
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
				if err := exporter.ManaBase(analysis); err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported to %s\n", a.exportPath)
			}

			if save {
				a.saveAnalysis(ctx, storage.AnalysisManaBase, list.Name, format.Name(), analysis)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&lands, "lands", "l", 0, "Target land count (default: detected from the deck)")
	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Deck format: standard, modern, commander, limited")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "Mana base algorithm: simple or cmc")
	cmd.Flags().BoolVar(&a.moxfield, "moxfield", false, "Treat the argument as a Moxfield deck URL or ID")
	cmd.Flags().BoolVar(&a.excludeLands, "exclude-lands", false, "Ignore lands already in the list when sizing the mana base")
	cmd.Flags().BoolVar(&explain, "explain", false, "Add a natural language explanation of the recommendation")
	cmd.Flags().BoolVar(&save, "save", false, "Save the analysis to the local database")

	return cmd
}
