package curve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwright/deckwright/internal/cards"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/decklist"
)

func hydratedList(t *testing.T, entries []decklist.Entry) *decklist.DeckList {
	t.Helper()
	list := decklist.New(decklist.SourceManual)
	list.Entries = entries
	return list
}

func card(name, manaCost string, cmc float64, typeLine string) *cards.Card {
	return &cards.Card{Name: name, ManaCost: manaCost, CMC: cmc, TypeLine: typeLine}
}

func TestAnalyze_BucketsAndCounts(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 4, Name: "Lightning Bolt", Card: card("Lightning Bolt", "{R}", 1, "Instant")},
		{Quantity: 3, Name: "Grizzly Bears", Card: card("Grizzly Bears", "{1}{G}", 2, "Creature — Bear")},
		{Quantity: 2, Name: "Counterspell", Card: card("Counterspell", "{U}{U}", 2, "Instant")},
		{Quantity: 20, Name: "Island", Card: card("Island", "", 0, "Basic Land — Island")},
	})

	analysis := Analyze(list)

	require.Len(t, analysis.Buckets, 2, "lands are excluded from buckets")

	one := analysis.Buckets[0]
	assert.Equal(t, 1, one.CMC)
	assert.Equal(t, 4, one.TotalCount)

	two := analysis.Buckets[1]
	assert.Equal(t, 2, two.CMC)
	assert.Equal(t, 5, two.TotalCount)
	assert.Equal(t, 3, two.CreatureCount)
	assert.Equal(t, 2, two.NonCreatureCount)

	assert.Equal(t, 2, analysis.MaxCMC)
	assert.Equal(t, 5, analysis.MaxCount)
	assert.Equal(t, 9, analysis.Stats.TotalNonlandCards)
}

func TestAnalyze_SkipsUnhydratedEntries(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 4, Name: "Mystery Card"},
		{Quantity: 2, Name: "Shock", Card: card("Shock", "{R}", 1, "Instant")},
	})

	analysis := Analyze(list)

	assert.Equal(t, 2, analysis.Stats.TotalNonlandCards)
}

func TestAnalyze_MedianEvenCount(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 1, Name: "A", Card: card("A", "{W}", 1, "Instant")},
		{Quantity: 1, Name: "B", Card: card("B", "{1}{W}", 2, "Instant")},
		{Quantity: 1, Name: "C", Card: card("C", "{2}{W}", 3, "Instant")},
		{Quantity: 1, Name: "D", Card: card("D", "{3}{W}", 4, "Instant")},
	})

	analysis := Analyze(list)

	assert.InDelta(t, 2.5, analysis.Stats.MedianCMC, 1e-9)
	assert.InDelta(t, 2.5, analysis.Stats.AverageCMC, 1e-9)
}

func TestAnalyze_PipBreakdownQuantityWeighted(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 2, Name: "Wrath", Card: card("Wrath", "{1}{W}{W}", 3, "Sorcery")},
	})

	analysis := Analyze(list)

	assert.InDelta(t, 4.0, analysis.PipBreakdown[deck.White], 1e-9)
	assert.Zero(t, analysis.PipBreakdown[deck.Blue])
	assert.Equal(t, 2, analysis.PipIntensity[deck.White], "double-pip card counts each copy")
}

func TestCountColorPips_Hybrid(t *testing.T) {
	breakdown := countColorPips("{W/U}", 1)

	assert.InDelta(t, 0.5, breakdown[deck.White], 1e-9)
	assert.InDelta(t, 0.5, breakdown[deck.Blue], 1e-9)
}

func TestCountColorPips_SkipsGenericAndX(t *testing.T) {
	breakdown := countColorPips("{X}{2}{B}{B}", 1)

	assert.InDelta(t, 2.0, breakdown[deck.Black], 1e-9)
	assert.InDelta(t, 2.0, breakdown.Total(), 1e-9)
}

func TestCountColorPips_MonoHybrid(t *testing.T) {
	// {2/W} is half generic, half white; only the white half counts.
	breakdown := countColorPips("{2/W}", 2)

	assert.InDelta(t, 1.0, breakdown[deck.White], 1e-9)
}

func TestAnalyze_Distributions(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 3, Name: "Bear", Card: card("Bear", "{1}{G}", 2, "Creature — Bear")},
		{Quantity: 1, Name: "Shock", Card: card("Shock", "{R}", 1, "Instant")},
	})

	analysis := Analyze(list)

	assert.InDelta(t, 0.75, analysis.Stats.CMCDistribution[2], 1e-9)
	assert.InDelta(t, 1.0, analysis.Stats.CreatureDistribution[2], 1e-9)
	assert.InDelta(t, 1.0, analysis.Stats.NonCreatureDistribution[1], 1e-9)
}

func TestAnalyze_AllCreaturesLeavesNonCreatureDistributionEmpty(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 4, Name: "Bear", Card: card("Bear", "{1}{G}", 2, "Creature — Bear")},
	})

	analysis := Analyze(list)

	assert.Empty(t, analysis.Stats.NonCreatureDistribution)
	assert.Equal(t, 4, analysis.Stats.TotalCreatures)
	assert.Zero(t, analysis.Stats.TotalNonCreatures)
}

func TestAnalyze_EmptyDeck(t *testing.T) {
	analysis := Analyze(decklist.New(decklist.SourceManual))

	assert.Empty(t, analysis.Buckets)
	assert.Zero(t, analysis.Stats.AverageCMC)
	assert.Zero(t, analysis.MaxCount)
}

func TestAnalyze_ModeTieGoesToLowestCMC(t *testing.T) {
	list := hydratedList(t, []decklist.Entry{
		{Quantity: 3, Name: "A", Card: card("A", "{R}", 1, "Instant")},
		{Quantity: 3, Name: "B", Card: card("B", "{2}{R}", 3, "Sorcery")},
	})

	analysis := Analyze(list)

	assert.Equal(t, 1, analysis.Stats.ModeCMC)
}
