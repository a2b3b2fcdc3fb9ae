package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwright/deckwright/internal/deck"
)

func makeDeck(colors []deck.Color, symbols map[deck.Color]int, duals []deck.DualLand, targetLands int) *deck.Deck {
	d := deck.NewDeck(deck.Standard)
	d.Colors = colors
	d.ManaSymbols = symbols
	d.DualLands = duals
	d.TargetLands = targetLands
	return d
}

func TestCalculate_MonoColorNoDuals(t *testing.T) {
	d := makeDeck(
		[]deck.Color{deck.Blue},
		map[deck.Color]int{deck.Blue: 20},
		nil, 24,
	)

	result := Calculate(d, deck.Simple)

	assert.Equal(t, 24, result.Basics[deck.Blue])
	assert.Equal(t, 24, result.TotalBasics())
}

func TestCalculate_TwoColorEvenSplitWithDuals(t *testing.T) {
	// 24 lands, 50% U / 50% B, 4 U/B duals. Each color needs 12 sources
	// and gets 4 from duals; the 4 extra slots split evenly.
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Black},
		map[deck.Color]int{deck.Blue: 10, deck.Black: 10},
		[]deck.DualLand{deck.NewDualLand("Dimir lands", []deck.Color{deck.Blue, deck.Black}, 4)},
		24,
	)

	result := Calculate(d, deck.Simple)

	assert.Equal(t, 20, result.TotalBasics())
	assert.Equal(t, result.Basics[deck.Blue], result.Basics[deck.Black])
}

func TestCalculate_HeavyDualsMaintainBalance(t *testing.T) {
	// Grixis with 8 U/B duals. Red must not soak up the slots freed by
	// dual coverage of the other two colors.
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Black, deck.Red},
		map[deck.Color]int{deck.Blue: 8, deck.Black: 7, deck.Red: 5},
		[]deck.DualLand{deck.NewDualLand("Dimir lands", []deck.Color{deck.Blue, deck.Black}, 8)},
		24,
	)

	result := Calculate(d, deck.Simple)

	require.Equal(t, 16, result.TotalBasics())
	assert.LessOrEqual(t, result.Basics[deck.Red], 10, "red should not be over-allocated")
	assert.GreaterOrEqual(t, result.Basics[deck.Blue], 3, "blue still needs some basics")
	assert.GreaterOrEqual(t, result.Basics[deck.Blue], result.Basics[deck.Black])
}

func TestCalculate_DualsExceedOneColorsNeed(t *testing.T) {
	// 60/40 split with 10 duals: black's ideal share (9.6) is fully
	// covered, but it still gets extras in proportion to its percentage.
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Black},
		map[deck.Color]int{deck.Blue: 12, deck.Black: 8},
		[]deck.DualLand{deck.NewDualLand("Dimir lands", []deck.Color{deck.Blue, deck.Black}, 10)},
		24,
	)

	result := Calculate(d, deck.Simple)

	require.Equal(t, 14, result.TotalBasics())
	assert.Greater(t, result.Basics[deck.Blue], result.Basics[deck.Black])
	assert.GreaterOrEqual(t, result.Basics[deck.Blue], 8)
	assert.GreaterOrEqual(t, result.Basics[deck.Black], 4)
}

func TestCalculate_OverconstrainedFiveColor(t *testing.T) {
	// Five even colors, one 2-count W/U dual: the remaining needs exceed
	// the 22 basic slots and get scaled down proportionally.
	colors := []deck.Color{deck.White, deck.Blue, deck.Black, deck.Red, deck.Green}
	symbols := map[deck.Color]int{}
	for _, c := range colors {
		symbols[c] = 4
	}
	d := makeDeck(colors, symbols,
		[]deck.DualLand{deck.NewDualLand("Azorius lands", []deck.Color{deck.White, deck.Blue}, 2)},
		24,
	)

	result := Calculate(d, deck.Simple)

	require.Equal(t, 22, result.TotalBasics())
	assert.True(t,
		result.Basics[deck.Black] > result.Basics[deck.White] ||
			result.Basics[deck.Black] > result.Basics[deck.Blue],
		"colors without dual coverage should get more basics")
}

func TestCalculate_ZeroSymbolsReturnsEmpty(t *testing.T) {
	d := makeDeck([]deck.Color{deck.Blue}, map[deck.Color]int{}, nil, 24)

	result := Calculate(d, deck.Simple)

	assert.Empty(t, result.Basics)
	assert.Empty(t, result.ColorPercentages)
}

func TestCalculate_NoColorsReturnsEmpty(t *testing.T) {
	d := makeDeck(nil, map[deck.Color]int{deck.Blue: 10}, nil, 24)

	result := Calculate(d, deck.Simple)

	assert.Empty(t, result.Basics)
}

func TestCalculate_DualsExceedTargetLands(t *testing.T) {
	// More duals than target lands: basic slots saturate at zero.
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Black},
		map[deck.Color]int{deck.Blue: 10, deck.Black: 10},
		[]deck.DualLand{deck.NewDualLand("Dimir lands", []deck.Color{deck.Blue, deck.Black}, 30)},
		24,
	)

	result := Calculate(d, deck.Simple)

	assert.Equal(t, 0, result.TotalBasics())
	assert.NotEmpty(t, result.ColorPercentages)
}

func TestCalculate_ZeroCountColorsRemoved(t *testing.T) {
	// Black is fully covered by duals in an overconstrained deck, so it
	// should be absent from the basics map but present in percentages.
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Black},
		map[deck.Color]int{deck.Blue: 19, deck.Black: 1},
		[]deck.DualLand{deck.NewDualLand("Dimir lands", []deck.Color{deck.Blue, deck.Black}, 10)},
		12,
	)

	result := Calculate(d, deck.Simple)

	_, hasBlack := result.Basics[deck.Black]
	assert.False(t, hasBlack, "zero-count colors are dropped from basics")
	assert.Contains(t, result.ColorPercentages, deck.Black)
}

func TestCalculate_CMCWeightedShiftsTowardIntensiveColor(t *testing.T) {
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Red},
		map[deck.Color]int{deck.Blue: 10, deck.Red: 10},
		nil, 24,
	)
	d.PipIntensity = map[deck.Color]int{deck.Blue: 6}

	result := Calculate(d, deck.CMCWeighted)

	assert.Equal(t, 24, result.TotalBasics())
	assert.Greater(t, result.Basics[deck.Blue], result.Basics[deck.Red])
	assert.Greater(t, result.ColorPercentages[deck.Blue], result.ColorPercentages[deck.Red])
}

func TestCalculate_CMCWeightedRecommendations(t *testing.T) {
	d := makeDeck(
		[]deck.Color{deck.Blue, deck.Red, deck.Green},
		map[deck.Color]int{deck.Blue: 10, deck.Red: 10, deck.Green: 10},
		nil, 24,
	)
	d.PipIntensity = map[deck.Color]int{deck.Blue: 6, deck.Red: 3, deck.Green: 2}

	result := Calculate(d, deck.CMCWeighted)

	require.Len(t, result.Recommendations, 2)
	assert.Contains(t, result.Recommendations[0], "Blue")
	assert.Contains(t, result.Recommendations[0], "very high")
	assert.Contains(t, result.Recommendations[0], "6 cards")
	assert.Contains(t, result.Recommendations[1], "Red")
	assert.Contains(t, result.Recommendations[1], "3 cards")
}

func TestCalculate_HypergeometricFallsBackToSimple(t *testing.T) {
	d := makeDeck(
		[]deck.Color{deck.Green},
		map[deck.Color]int{deck.Green: 15},
		nil, 20,
	)

	simple := Calculate(d, deck.Simple)
	hyper := Calculate(d, deck.Hypergeometric)

	assert.Equal(t, simple.Basics, hyper.Basics)
}

func TestRoundLargestRemainder_ExactSum(t *testing.T) {
	cases := []struct {
		name   string
		counts map[deck.Color]float64
		colors []deck.Color
		target int
	}{
		{
			name:   "thirds",
			counts: map[deck.Color]float64{deck.White: 7.333, deck.Blue: 7.333, deck.Black: 7.334},
			colors: []deck.Color{deck.White, deck.Blue, deck.Black},
			target: 22,
		},
		{
			name:   "uneven fractions",
			counts: map[deck.Color]float64{deck.Red: 9.6, deck.Green: 6.4},
			colors: []deck.Color{deck.Red, deck.Green},
			target: 16,
		},
		{
			name:   "identical fractions",
			counts: map[deck.Color]float64{deck.White: 5.5, deck.Blue: 5.5, deck.Black: 5.5, deck.Red: 5.5},
			colors: []deck.Color{deck.White, deck.Blue, deck.Black, deck.Red},
			target: 22,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := make(map[deck.Color]int)
			roundLargestRemainder(out, tc.counts, tc.colors, tc.target)

			total := 0
			for _, n := range out {
				total += n
			}
			assert.Equal(t, tc.target, total)
		})
	}
}

func TestRoundLargestRemainder_TieBreakByColorOrder(t *testing.T) {
	// Two identical fractions and one leftover slot: White wins the tie
	// because it sorts first in display order.
	out := make(map[deck.Color]int)
	roundLargestRemainder(out,
		map[deck.Color]float64{deck.Green: 5.5, deck.White: 5.5},
		[]deck.Color{deck.Green, deck.White}, 12)

	assert.Equal(t, 6, out[deck.White])
	assert.Equal(t, 6, out[deck.Green])

	out = make(map[deck.Color]int)
	roundLargestRemainder(out,
		map[deck.Color]float64{deck.Green: 5.5, deck.White: 5.5},
		[]deck.Color{deck.Green, deck.White}, 11)

	assert.Equal(t, 6, out[deck.White])
	assert.Equal(t, 5, out[deck.Green])
}
