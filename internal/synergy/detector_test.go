package synergy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwright/deckwright/internal/cards"
	"github.com/deckwright/deckwright/internal/decklist"
)

func tokenCard(name string) *cards.Card {
	return textCard(name, "Create a 1/1 white Soldier creature token.", "Sorcery")
}

func vanillaCard(name string) *cards.Card {
	return textCard(name, "", "Creature — Ooze")
}

func synergyList(entries []decklist.Entry) *decklist.DeckList {
	list := decklist.New(decklist.SourceManual)
	list.Name = "Test Deck"
	list.Entries = entries
	return list
}

func TestAnalyze_DetectsPrimaryTheme(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Token B", Card: tokenCard("Token B")},
		{Quantity: 1, Name: "Token C", Card: tokenCard("Token C")},
		{Quantity: 1, Name: "Token D", Card: tokenCard("Token D")},
		{Quantity: 1, Name: "Anthem", Card: textCard("Anthem", "Creature tokens you control get +1/+1.", "Enchantment")},
		{Quantity: 1, Name: "Ooze One", Card: vanillaCard("Ooze One")},
		{Quantity: 1, Name: "Ooze Two", Card: vanillaCard("Ooze Two")},
	})

	matrix := NewDetector().Analyze(list)

	require.NotNil(t, matrix.PrimaryTheme)
	assert.Equal(t, ThemeTokens, matrix.PrimaryTheme.Kind)

	require.Len(t, matrix.DetectedThemes, 1)
	tokens := matrix.DetectedThemes[0]
	assert.Equal(t, 5, tokens.CardCount)
	assert.InDelta(t, 5.0/7.0, tokens.Percentage, 1e-9)
	assert.Contains(t, tokens.Enablers, "Token A")
	assert.Contains(t, tokens.Payoffs, "Anthem")
}

func TestAnalyze_ThinThemesFilteredOut(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Token B", Card: tokenCard("Token B")},
	})

	matrix := NewDetector().Analyze(list)

	assert.Empty(t, matrix.DetectedThemes, "two cards is below the five-card minimum")
	assert.Nil(t, matrix.PrimaryTheme)
}

func TestAnalyze_EdgesAndRelations(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Anthem", Card: textCard("Anthem", "Creature tokens you control get +1/+1.", "Enchantment")},
	})

	detector := &Detector{MinThemeCards: 2}
	matrix := detector.Analyze(list)

	require.Len(t, matrix.Edges, 1)
	edge := matrix.Edges[0]
	assert.Equal(t, "Token A", edge.CardA, "enablers come before payoffs")
	assert.Equal(t, "Anthem", edge.CardB)
	assert.Equal(t, RelationEnables, edge.Relation)
	assert.InDelta(t, 0.5, edge.Strength, 1e-9)
	assert.Equal(t, "Both support Tokens theme", edge.Reason)
}

func TestAnalyze_SharedThemesProduceOneEdge(t *testing.T) {
	text := "Create a token. Sacrifice a creature."
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Pair A", Card: textCard("Pair A", text, "Sorcery")},
		{Quantity: 1, Name: "Pair B", Card: textCard("Pair B", text, "Sorcery")},
	})

	detector := &Detector{MinThemeCards: 2}
	matrix := detector.Analyze(list)

	assert.Greater(t, len(matrix.DetectedThemes), 1, "both cards match multiple themes")
	assert.Len(t, matrix.Edges, 1, "same pair is never connected twice")
}

func TestAnalyze_OrphansAndHubs(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Token B", Card: tokenCard("Token B")},
		{Quantity: 1, Name: "Ooze Two", Card: vanillaCard("Ooze Two")},
		{Quantity: 1, Name: "Ooze One", Card: vanillaCard("Ooze One")},
	})

	detector := &Detector{MinThemeCards: 2}
	matrix := detector.Analyze(list)

	assert.Equal(t, []string{"Ooze One", "Ooze Two"}, matrix.Stats.OrphanCards, "orphans are sorted")
	assert.Equal(t, []string{"Token A", "Token B"}, matrix.Stats.HubCards)
	assert.InDelta(t, 1.0/6.0, matrix.Stats.SynergyDensity, 1e-9, "one edge out of six possible pairs")
	assert.InDelta(t, 0.5, matrix.Stats.ThemeCoverage, 1e-9)
}

func TestAnalyze_CoverageCountsUnhydratedEntries(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Mystery One"},
		{Quantity: 1, Name: "Mystery Two"},
		{Quantity: 1, Name: "Mystery Three"},
	})

	matrix := NewDetector().Analyze(list)

	assert.InDelta(t, 0.25, matrix.Stats.ThemeCoverage, 1e-9,
		"unhydrated entries stay in the coverage denominator")
	assert.Contains(t, matrix.Observations, "75% of cards don't contribute to any detected theme.")
}

func TestAnalyze_TribalTheme(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 4, Name: "Llanowar Elves", Card: textCard("Llanowar Elves", "", "Creature — Elf Druid")},
		{Quantity: 4, Name: "Elvish Mystic", Card: textCard("Elvish Mystic", "", "Creature — Elf Druid")},
	})

	detector := &Detector{MinThemeCards: 2}
	matrix := detector.Analyze(list)

	require.Len(t, matrix.DetectedThemes, 1)
	theme := matrix.DetectedThemes[0].Theme
	assert.Equal(t, ThemeTribal, theme.Kind)
	assert.Equal(t, "Elf", theme.Tribe)
	assert.Equal(t, "Elf Tribal", theme.DisplayName())
	assert.Equal(t, 2, matrix.DetectedThemes[0].CardCount)

	// Tribal membership lives in the theme analysis, not the profiles.
	assert.Empty(t, matrix.CardProfiles["Llanowar Elves"].Themes)
	assert.Zero(t, matrix.Stats.ThemeCoverage)
}

func TestAnalyze_Observations(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A")},
		{Quantity: 1, Name: "Token B", Card: tokenCard("Token B")},
		{Quantity: 1, Name: "Token C", Card: tokenCard("Token C")},
		{Quantity: 1, Name: "Token D", Card: tokenCard("Token D")},
		{Quantity: 1, Name: "Token E", Card: tokenCard("Token E")},
		{Quantity: 1, Name: "Ooze One", Card: vanillaCard("Ooze One")},
	})

	matrix := NewDetector().Analyze(list)

	require.NotEmpty(t, matrix.Observations)
	assert.Equal(t, "Primary theme: Tokens (5 cards, 83% of deck)", matrix.Observations[0])
	assert.Contains(t, matrix.Observations, "High synergy density! Cards work well together.")
	assert.Contains(t, matrix.Observations, "Cards with no detected synergies: Ooze One")
}

func TestAnalyze_SkipsUnhydratedAndSideboard(t *testing.T) {
	list := synergyList([]decklist.Entry{
		{Quantity: 1, Name: "Mystery"},
		{Quantity: 1, Name: "Token A", Card: tokenCard("Token A"), Section: decklist.Sideboard},
	})

	matrix := NewDetector().Analyze(list)

	assert.Empty(t, matrix.CardProfiles)
	assert.Empty(t, matrix.Edges)
}

func TestAnalyze_EmptyDeck(t *testing.T) {
	matrix := NewDetector().Analyze(decklist.New(decklist.SourceManual))

	assert.Empty(t, matrix.DetectedThemes)
	assert.Nil(t, matrix.PrimaryTheme)
	assert.Empty(t, matrix.Edges)
}
