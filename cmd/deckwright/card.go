package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deckwright/deckwright/internal/cards"
)

func newCardCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "card <name>",
		Short: "Look up a card by name",
		Long: `Fetches a card's details, using the local cache when available and
falling back to the remote card APIs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.Join(args, " ")

			service, err := a.cardService()
			if err != nil {
				return err
			}

			resolved, missing, err := service.FetchAll(ctx, []string{name})
			if err != nil {
				return fmt.Errorf("fetch card: %w", err)
			}
			if len(missing) > 0 || resolved[name] == nil {
				return fmt.Errorf("card not found: %s", name)
			}
			card := resolved[name]

			if asJSON {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(card)
			}

			printCard(os.Stdout, card)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the card as JSON")

	return cmd
}

func printCard(w *os.File, card *cards.Card) {
	fmt.Fprintf(w, "# %s", card.Name)
	if card.ManaCost != "" {
		fmt.Fprintf(w, "  %s", card.ManaCost)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, card.TypeLine)
	if pt, ok := card.PowerToughness(); ok {
		fmt.Fprintf(w, "%s\n", pt)
	}

	if card.OracleText != "" {
		fmt.Fprintf(w, "\n%s\n", card.OracleText)
	}
	for _, face := range card.Faces {
		if face.Name == card.Name || face.OracleText == "" {
			continue
		}
		fmt.Fprintf(w, "\n## %s  %s\n\n%s\n%s\n", face.Name, face.ManaCost, face.TypeLine, face.OracleText)
	}

	if card.SetName != "" {
		fmt.Fprintf(w, "\nSet: %s (%s), %s\n", card.SetName, strings.ToUpper(card.SetCode), card.Rarity)
	}

	if card.Prices != nil && (card.Prices.USD != "" || card.Prices.EUR != "") {
		fmt.Fprint(w, "Prices:")
		if card.Prices.USD != "" {
			fmt.Fprintf(w, " $%s", card.Prices.USD)
		}
		if card.Prices.EUR != "" {
			fmt.Fprintf(w, " €%s", card.Prices.EUR)
		}
		fmt.Fprintln(w)
	}

	if len(card.Legalities) > 0 {
		var legal []string
		for _, format := range sortedKeys(card.Legalities) {
			if card.Legalities[format] == "legal" {
				legal = append(legal, format)
			}
		}
		if len(legal) > 0 {
			fmt.Fprintf(w, "Legal in: %s\n", strings.Join(legal, ", "))
		}
	}
}
