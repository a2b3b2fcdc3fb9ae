package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/curve"
	"github.com/deckwright/deckwright/internal/export"
	"github.com/deckwright/deckwright/internal/storage"
)

func newCurveCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "curve <decklist>",
		Short: "Analyze a decklist's mana curve",
		Long: `Buckets the deck's nonland cards by converted mana cost and reports
curve statistics and the colored pip breakdown.`,
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

			if err := export.WriteCurve(os.Stdout, export.FormatMarkdown, analysis); err != nil {
				return err
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
				if err := exporter.Curve(analysis); err != nil {
					return fmt.Errorf("export failed: %w", err)
				}
				fmt.Fprintf(os.Stderr, "Exported to %s\n", a.exportPath)
			}

			if save {
				a.saveAnalysis(ctx, storage.AnalysisCurve, list.Name, list.Format, analysis)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&a.moxfield, "moxfield", false, "Treat the argument as a Moxfield deck URL or ID")
	cmd.Flags().BoolVar(&save, "save", false, "Save the analysis to the local database")

	return cmd
}
