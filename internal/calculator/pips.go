package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/deck"
)

// PipAnalysis reports how many cards demand two or more pips of a color.
type PipAnalysis struct {
	Color     deck.Color
	Intensity int
	Warning   string // empty when intensity is below the warning threshold
}

// AnalyzePipIntensity scores each deck color's double-pip density and
// returns the results sorted by intensity descending. Warnings kick in at
// three intensive cards and escalate at five.
func AnalyzePipIntensity(d *deck.Deck) []PipAnalysis {
	analyses := make([]PipAnalysis, 0, len(d.Colors))

	for _, color := range d.Colors {
		intensity := d.PipIntensity[color]

		var warning string
		switch {
		case intensity >= 5:
			warning = fmt.Sprintf(
				"%s has very high pip density (%d cards with double+ pips). Strongly consider additional %s sources, fetch lands, or mana rocks.",
				color.Name(), intensity, strings.ToLower(color.Name()))
		case intensity >= 3:
			warning = fmt.Sprintf(
				"%s has high pip density (%d cards with {%s}{%s} or more). Consider additional %s sources or mana rocks.",
				color.Name(), intensity, color.Symbol(), color.Symbol(), strings.ToLower(color.Name()))
		}

		analyses = append(analyses, PipAnalysis{Color: color, Intensity: intensity, Warning: warning})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Intensity > analyses[j].Intensity
	})

	return analyses
}

// IntensityRecommendations returns only the warning strings from the pip
// intensity analysis, in the same order.
func IntensityRecommendations(d *deck.Deck) []string {
	var recs []string
	for _, a := range AnalyzePipIntensity(d) {
		if a.Warning != "" {
			recs = append(recs, a.Warning)
		}
	}
	return recs
}
