package synergy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckwright/deckwright/internal/cards"
)

func textCard(name, oracleText, typeLine string) *cards.Card {
	return &cards.Card{Name: name, OracleText: oracleText, TypeLine: typeLine}
}

func TestExtractKeywords(t *testing.T) {
	card := textCard("Serra Angel", "Flying, vigilance", "Creature — Angel")

	keywords := ExtractKeywords(card)

	assert.Equal(t, []Keyword{KeywordFlying, KeywordVigilance}, keywords)
}

func TestExtractKeywords_Dedupes(t *testing.T) {
	card := textCard("Flier", "Flying. Other creatures you control have flying.", "Creature — Bird")

	keywords := ExtractKeywords(card)

	assert.Equal(t, []Keyword{KeywordFlying}, keywords)
}

func TestExtractKeywords_MultiWord(t *testing.T) {
	card := textCard("Duelist", "First strike, double strike", "Creature — Human Knight")

	keywords := ExtractKeywords(card)

	assert.Contains(t, keywords, KeywordFirstStrike)
	assert.Contains(t, keywords, KeywordDoubleStrike)
}

func TestExtractKeywords_SpansFaces(t *testing.T) {
	card := &cards.Card{
		Name: "Delver of Secrets // Insectile Aberration",
		Faces: []cards.Face{
			{Name: "Delver of Secrets", OracleText: "At the beginning of your upkeep, look at the top card."},
			{Name: "Insectile Aberration", OracleText: "Flying"},
		},
	}

	keywords := ExtractKeywords(card)

	assert.Equal(t, []Keyword{KeywordFlying}, keywords)
}

func TestExtractCreatureTypes(t *testing.T) {
	card := textCard("Elvish Visionary", "", "Creature — Elf Shaman")

	types := ExtractCreatureTypes(card)

	assert.Equal(t, []string{"Elf", "Shaman"}, types)
}

func TestExtractCreatureTypes_IgnoresUnknownSubtypes(t *testing.T) {
	card := textCard("Weird", "", "Creature — Weird Mutant")

	assert.Empty(t, ExtractCreatureTypes(card))
}

func TestExtractCreatureTypes_NonCreature(t *testing.T) {
	card := textCard("Shock", "", "Instant")

	assert.Empty(t, ExtractCreatureTypes(card))
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsCreature(textCard("Bear", "", "Creature — Bear")))
	assert.True(t, IsInstantOrSorcery(textCard("Shock", "", "Instant")))
	assert.True(t, IsInstantOrSorcery(textCard("Duress", "", "Sorcery")))
	assert.True(t, IsLand(textCard("Island", "", "Basic Land — Island")))
	assert.True(t, IsEquipment(textCard("Sword", "", "Artifact — Equipment")))
	assert.True(t, IsAura(textCard("Pacifism", "", "Enchantment — Aura")))
	assert.False(t, IsPlaneswalker(textCard("Bear", "", "Creature — Bear")))
}
