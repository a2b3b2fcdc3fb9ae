// Package calculator computes recommended basic land counts for a deck's
// mana base.
//
// Both algorithms share the same allocation pipeline and differ only in how
// they weight each color's demand: Simple uses raw pip counts, CMCWeighted
// adds extra weight for colors with many double-pip cards. The pipeline
// accounts for dual land coverage, fits the remaining need into the basic
// land slot budget, and rounds with the largest-remainder method so the
// result always sums to exactly the available slots.
package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/deck"
)

// Calculate computes a mana base recommendation for the deck using the given
// algorithm. It is a total function: degenerate inputs (no colors, no pips)
// yield an empty ManaBase rather than an error.
func Calculate(d *deck.Deck, algorithm deck.Algorithm) *deck.ManaBase {
	switch algorithm {
	case deck.CMCWeighted:
		return calculateCMCWeighted(d)
	case deck.Simple, deck.Hypergeometric:
		// Hypergeometric is not implemented yet; fall back to Simple.
		return calculateSimple(d)
	default:
		return calculateSimple(d)
	}
}

func calculateSimple(d *deck.Deck) *deck.ManaBase {
	weights := make(map[deck.Color]float64, len(d.Colors))
	for _, color := range d.Colors {
		weights[color] = float64(d.ManaSymbols[color])
	}
	return allocate(d, weights)
}

func calculateCMCWeighted(d *deck.Deck) *deck.ManaBase {
	// Colors full of double-pip cards need denser sources than their raw
	// pip share suggests, so intensity adds half a pip per intensive card.
	weights := make(map[deck.Color]float64, len(d.Colors))
	for _, color := range d.Colors {
		weights[color] = float64(d.ManaSymbols[color]) + 0.5*float64(d.PipIntensity[color])
	}

	base := allocate(d, weights)

	for _, color := range d.Colors {
		intensity := d.PipIntensity[color]
		switch {
		case intensity >= 5:
			base.Recommendations = append(base.Recommendations, fmt.Sprintf(
				"%s has very high pip density (%d cards with double+ pips). Strongly consider additional %s sources, fetch lands, or mana rocks.",
				color.Name(), intensity, strings.ToLower(color.Name())))
		case intensity >= 3:
			base.Recommendations = append(base.Recommendations, fmt.Sprintf(
				"%s has high pip density (%d cards with {%s}{%s} or more). Consider additional %s sources or mana rocks.",
				color.Name(), intensity, color.Symbol(), color.Symbol(), strings.ToLower(color.Name())))
		}
	}

	return base
}

// allocate runs the shared allocation pipeline over per-color demand weights.
func allocate(d *deck.Deck, weights map[deck.Color]float64) *deck.ManaBase {
	base := deck.NewManaBase()
	base.Duals = d.DualLands

	if d.TotalManaSymbols() == 0 || len(d.Colors) == 0 {
		return base
	}

	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return base
	}

	// Percentages are reported verbatim even for colors that end up with
	// zero basics.
	for _, color := range d.Colors {
		base.ColorPercentages[color] = weights[color] / totalWeight
	}

	// Every dual contributes a source to each color it produces.
	dualSources := make(map[deck.Color]float64)
	for _, dual := range d.DualLands {
		for _, color := range dual.Colors {
			dualSources[color] += float64(dual.Count)
		}
	}

	// Remaining need per color after dual coverage, floored at zero.
	remaining := make(map[deck.Color]float64, len(d.Colors))
	totalRemaining := 0.0
	for _, color := range d.Colors {
		baseline := base.ColorPercentages[color] * float64(d.TargetLands)
		need := baseline - dualSources[color]
		if need < 0 {
			need = 0
		}
		remaining[color] = need
		totalRemaining += need
	}

	basicSlots := float64(d.BasicLandSlots())
	counts := make(map[deck.Color]float64, len(d.Colors))
	if totalRemaining >= basicSlots {
		// Overconstrained: scale every need down proportionally.
		scale := 0.0
		if totalRemaining > 0 {
			scale = basicSlots / totalRemaining
		}
		for _, color := range d.Colors {
			counts[color] = remaining[color] * scale
		}
	} else {
		// Underconstrained: fill hard requirements, then distribute the
		// extra slots by each color's overall percentage rather than its
		// remaining need, so dual-saturated colors keep their fair share.
		extras := basicSlots - totalRemaining
		for _, color := range d.Colors {
			counts[color] = remaining[color] + extras*base.ColorPercentages[color]
		}
	}

	roundLargestRemainder(base.Basics, counts, d.Colors, d.BasicLandSlots())

	for color, n := range base.Basics {
		if n == 0 {
			delete(base.Basics, color)
		}
	}

	return base
}

// roundLargestRemainder floors each fractional count, then hands the leftover
// slots one at a time to the colors with the largest fractional remainders.
// Ties break by the fixed color display order so results are deterministic.
func roundLargestRemainder(out map[deck.Color]int, counts map[deck.Color]float64, colors []deck.Color, target int) {
	type fraction struct {
		color deck.Color
		frac  float64
	}

	floored := 0
	fractions := make([]fraction, 0, len(colors))
	for _, color := range colors {
		count := counts[color]
		whole := int(count)
		out[color] = whole
		floored += whole
		fractions = append(fractions, fraction{color: color, frac: count - float64(whole)})
	}

	sort.SliceStable(fractions, func(i, j int) bool {
		if fractions[i].frac != fractions[j].frac {
			return fractions[i].frac > fractions[j].frac
		}
		return fractions[i].color < fractions[j].color
	})

	for i := 0; i < len(fractions) && floored < target; i++ {
		out[fractions[i].color]++
		floored++
	}
}
