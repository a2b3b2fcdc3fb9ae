package curve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/calculator"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/decklist"
)

// DetermineLandCount picks the target land count for the mana base, in
// priority order: an explicit user value, the lands counted in the deck,
// then the format default. userLands <= 0 means not provided.
func DetermineLandCount(list *decklist.DeckList, userLands int, excludesLands bool) (int, LandCountSource) {
	if userLands > 0 {
		return userLands, LandCountSource{Kind: LandsUserProvided}
	}

	if !excludesLands {
		if detected := list.CountLands(); detected > 0 {
			return detected, LandCountSource{Kind: LandsDetected, Detected: detected}
		}
	}

	format := DetectFormat(list)
	return format.DefaultLands(), LandCountSource{Kind: LandsFormatDefault, Format: format}
}

// DetectFormat infers the deck's format from its metadata, falling back
// to card-count heuristics.
func DetectFormat(list *decklist.DeckList) deck.Format {
	if list.Format != "" {
		lower := strings.ToLower(list.Format)
		switch {
		case strings.Contains(lower, "commander"), strings.Contains(lower, "edh"):
			return deck.Commander
		case strings.Contains(lower, "standard"):
			return deck.Standard
		case strings.Contains(lower, "modern"):
			return deck.Modern
		case strings.Contains(lower, "limited"), strings.Contains(lower, "draft"), strings.Contains(lower, "sealed"):
			return deck.Limited
		}
	}

	total := list.TotalCards()
	hasCommander := len(list.Commanders()) > 0

	switch {
	case hasCommander || total >= 99:
		return deck.Commander
	case total <= 45:
		return deck.Limited
	default:
		return deck.Standard
	}
}

// DetectDualLands finds multi-colored lands in the mainboard and groups
// them by color identity. Two-color groups get guild names.
func DetectDualLands(list *decklist.DeckList) []deck.DualLand {
	type group struct {
		colors []deck.Color
		count  int
	}
	groups := make(map[string]*group)

	for _, entry := range list.MainboardEntries() {
		card := entry.Card
		if card == nil || !isLand(card.TypeLine) {
			continue
		}
		if len(card.ColorIdentity) < 2 {
			continue
		}

		var colors []deck.Color
		for _, s := range card.ColorIdentity {
			if color, ok := deck.ColorFromSymbol(s); ok {
				colors = append(colors, color)
			}
		}
		if len(colors) < 2 {
			continue
		}
		sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

		key := colorKey(colors)
		if g, ok := groups[key]; ok {
			g.count += entry.Quantity
		} else {
			groups[key] = &group{colors: colors, count: entry.Quantity}
		}
	}

	duals := make([]deck.DualLand, 0, len(groups))
	for _, g := range groups {
		duals = append(duals, deck.NewDualLand(dualGroupName(g.colors), g.colors, g.count))
	}
	sort.Slice(duals, func(i, j int) bool {
		if len(duals[i].Colors) != len(duals[j].Colors) {
			return len(duals[i].Colors) < len(duals[j].Colors)
		}
		return colorKey(duals[i].Colors) < colorKey(duals[j].Colors)
	})

	return duals
}

func colorKey(colors []deck.Color) string {
	var b strings.Builder
	for _, c := range colors {
		b.WriteString(c.Symbol())
	}
	return b.String()
}

func dualGroupName(colors []deck.Color) string {
	symbols := make([]string, len(colors))
	for i, c := range colors {
		symbols[i] = c.Symbol()
	}

	if len(colors) == 2 {
		if guild, ok := deck.GuildName(colors); ok {
			return fmt.Sprintf("%s lands", guild)
		}
		return fmt.Sprintf("%s lands", strings.Join(symbols, "/"))
	}
	return fmt.Sprintf("%s-color lands", strings.Join(symbols, "/"))
}

// BuildDeck converts a curve analysis into calculator input.
func BuildDeck(analysis *Analysis, list *decklist.DeckList, targetLands int, format deck.Format) *deck.Deck {
	d := deck.NewDeck(format)
	d.TotalCards = analysis.TotalCards
	d.TargetLands = targetLands
	d.Colors = analysis.PipBreakdown.Colors()
	d.ManaSymbols = analysis.PipBreakdown.ManaSymbols()
	if analysis.PipIntensity != nil {
		d.PipIntensity = analysis.PipIntensity
	}
	d.DualLands = DetectDualLands(list)
	return d
}

// CalculateManaBase runs the mana base calculator over a curve analysis.
func CalculateManaBase(analysis *Analysis, list *decklist.DeckList, targetLands int, format deck.Format, algorithm deck.Algorithm) *deck.ManaBase {
	d := BuildDeck(analysis, list, targetLands, format)
	return calculator.Calculate(d, algorithm)
}
