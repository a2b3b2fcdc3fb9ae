// Package curve analyzes a deck's mana curve: CMC buckets, summary
// statistics, and the colored pip breakdown that feeds the mana base
// calculator.
package curve

import (
	"fmt"
	"math"

	"github.com/deckwright/deckwright/internal/deck"
)

// PipBreakdown counts colored mana pips per color. Hybrid pips contribute
// fractional amounts, hence float64.
type PipBreakdown map[deck.Color]float64

// Total returns the sum of all pip counts.
func (p PipBreakdown) Total() float64 {
	total := 0.0
	for _, v := range p {
		total += v
	}
	return total
}

// Add accumulates another breakdown into this one.
func (p PipBreakdown) Add(other PipBreakdown) {
	for color, v := range other {
		p[color] += v
	}
}

// ManaSymbols rounds the breakdown into the integer symbol counts the
// calculator takes as input.
func (p PipBreakdown) ManaSymbols() map[deck.Color]int {
	symbols := make(map[deck.Color]int)
	for color, v := range p {
		if v > 0 {
			symbols[color] = int(math.Round(v))
		}
	}
	return symbols
}

// Colors returns the colors present in the breakdown in display order,
// excluding colorless.
func (p PipBreakdown) Colors() []deck.Color {
	var colors []deck.Color
	for _, color := range deck.AllColors() {
		if p[color] > 0 {
			colors = append(colors, color)
		}
	}
	return colors
}

// Bucket is a single CMC slot in the curve.
type Bucket struct {
	CMC              int
	TotalCount       int
	CreatureCount    int
	NonCreatureCount int
	CardNames        []string
	CreatureNames    []string
	NonCreatureNames []string
}

// Stats summarizes the curve.
type Stats struct {
	AverageCMC        float64
	MedianCMC         float64
	ModeCMC           int
	TotalNonlandCards int
	TotalCreatures    int
	TotalNonCreatures int

	// Per-bucket share of the respective total. Creature and
	// non-creature maps are empty when their totals are zero.
	CMCDistribution         map[int]float64
	CreatureDistribution    map[int]float64
	NonCreatureDistribution map[int]float64
}

// LandSourceKind describes how the target land count was chosen.
type LandSourceKind int

const (
	LandsUserProvided LandSourceKind = iota
	LandsDetected
	LandsFormatDefault
)

// LandCountSource records where the target land count came from.
type LandCountSource struct {
	Kind     LandSourceKind
	Detected int         // set for LandsDetected
	Format   deck.Format // set for LandsFormatDefault
}

// Description renders the source for display.
func (s LandCountSource) Description() string {
	switch s.Kind {
	case LandsUserProvided:
		return "user provided"
	case LandsDetected:
		return fmt.Sprintf("detected %d lands in deck", s.Detected)
	default:
		return fmt.Sprintf("%s format default", s.Format)
	}
}

// Analysis is the complete curve analysis result.
type Analysis struct {
	DeckName    string
	DeckFormat  string
	TotalCards  int
	UniqueCards int

	Buckets      []Bucket
	Stats        Stats
	MaxCMC       int
	MaxCount     int
	PipBreakdown PipBreakdown

	// PipIntensity counts cards demanding two or more pips of a color,
	// quantity weighted.
	PipIntensity map[deck.Color]int

	// Optional mana base recommendation attached by the bridge.
	ManaBase    *deck.ManaBase
	TargetLands int
	LandSource  *LandCountSource
}
