package synergy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func themeKinds(matches []ThemeMatch) []ThemeKind {
	kinds := make([]ThemeKind, 0, len(matches))
	for _, m := range matches {
		kinds = append(kinds, m.Theme.Kind)
	}
	return kinds
}

func TestDetectCardThemes_Tokens(t *testing.T) {
	card := textCard("Raise the Alarm", "Create two 1/1 white Soldier creature tokens.", "Instant")

	matches := DetectCardThemes(card)

	assert.Contains(t, themeKinds(matches), ThemeTokens)
}

func TestDetectCardThemes_Graveyard(t *testing.T) {
	card := textCard("Raise Dead", "Return target creature card from your graveyard to your hand.", "Sorcery")

	matches := DetectCardThemes(card)

	assert.Contains(t, themeKinds(matches), ThemeGraveyard)
}

func TestDetectCardThemes_Counters(t *testing.T) {
	card := textCard("Hardened Scales", "Whenever one or more +1/+1 counters would be put on a creature you control, that many plus one are put on it instead.", "Enchantment")

	matches := DetectCardThemes(card)

	var found bool
	for _, m := range matches {
		if m.Theme.Kind == ThemeCounters {
			found = true
			assert.Equal(t, CounterPlusOne, m.Theme.Counter)
		}
	}
	assert.True(t, found)
}

func TestDetectCardThemes_EquipmentTypeLine(t *testing.T) {
	card := textCard("Shortsword", "Equipped creature gets +1/+0. Equip {1}", "Artifact — Equipment")

	matches := DetectCardThemes(card)

	kinds := themeKinds(matches)
	assert.Contains(t, kinds, ThemeEquipment)
	assert.Contains(t, kinds, ThemeVoltron)
	assert.NotContains(t, kinds, ThemeArtifacts, "Equipment does not count toward artifacts-matter")
}

func TestDetectCardThemes_NoMatch(t *testing.T) {
	card := textCard("Island", "", "Basic Land — Island")

	assert.Empty(t, DetectCardThemes(card))
}

func TestDetectTribalThemes_CountThreshold(t *testing.T) {
	tribal := DetectTribalThemes(map[string]int{"Elf": 9, "Human": 2}, 20)

	require.Len(t, tribal, 1)
	assert.Equal(t, "Elf", tribal[0].Theme.Tribe)
	assert.Equal(t, 9, tribal[0].Count)
}

func TestDetectTribalThemes_PercentageThreshold(t *testing.T) {
	tribal := DetectTribalThemes(map[string]int{"Dragon": 4}, 10)

	require.Len(t, tribal, 1)
	assert.Equal(t, "Dragon", tribal[0].Theme.Tribe)
	assert.InDelta(t, 0.4, tribal[0].Percentage, 1e-9)
}

func TestDetectTribalThemes_BelowBothThresholds(t *testing.T) {
	tribal := DetectTribalThemes(map[string]int{"Goblin": 3}, 30)

	assert.Empty(t, tribal)
}

func TestDetectTribalThemes_SortedByCountDesc(t *testing.T) {
	tribal := DetectTribalThemes(map[string]int{"Elf": 10, "Wizard": 12, "Human": 10}, 40)

	require.Len(t, tribal, 3)
	assert.Equal(t, "Wizard", tribal[0].Theme.Tribe)
	assert.Equal(t, "Elf", tribal[1].Theme.Tribe, "ties break by tribe name")
	assert.Equal(t, "Human", tribal[2].Theme.Tribe)
}

func TestClassifyCardRole_Tokens(t *testing.T) {
	enabler := textCard("Raise the Alarm", "Create two 1/1 white Soldier creature tokens.", "Instant")
	payoff := textCard("Intangible Virtue", "Creature tokens you control get +1/+1 and have vigilance.", "Enchantment")
	support := textCard("Opt", "Scry 1. Draw a card.", "Instant")

	assert.Equal(t, RoleEnabler, ClassifyCardRole(enabler, Theme{Kind: ThemeTokens}))
	assert.Equal(t, RolePayoff, ClassifyCardRole(payoff, Theme{Kind: ThemeTokens}))
	assert.Equal(t, RoleSupport, ClassifyCardRole(support, Theme{Kind: ThemeTokens}))
}

func TestClassifyCardRole_Graveyard(t *testing.T) {
	enabler := textCard("Mind Sculpt", "Target opponent mills seven cards.", "Sorcery")
	payoff := textCard("Gravecrawler", "You may cast this card from your graveyard as long as you control a Zombie.", "Creature — Zombie")

	assert.Equal(t, RoleEnabler, ClassifyCardRole(enabler, Theme{Kind: ThemeGraveyard}))
	assert.Equal(t, RolePayoff, ClassifyCardRole(payoff, Theme{Kind: ThemeGraveyard}))
}

func TestClassifyCardRole_EnablerWinsOverPayoff(t *testing.T) {
	// Both create and "tokens you control" match; enabler checks run first.
	card := textCard("Both", "Create a token. Tokens you control get +1/+1.", "Enchantment")

	assert.Equal(t, RoleEnabler, ClassifyCardRole(card, Theme{Kind: ThemeTokens}))
}
