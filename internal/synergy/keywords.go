package synergy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/cards"
)

// Keyword abilities recognized by the extractor.
const (
	KeywordFlying         Keyword = "Flying"
	KeywordTrample        Keyword = "Trample"
	KeywordHaste          Keyword = "Haste"
	KeywordVigilance      Keyword = "Vigilance"
	KeywordDeathtouch     Keyword = "Deathtouch"
	KeywordLifelink       Keyword = "Lifelink"
	KeywordFirstStrike    Keyword = "First Strike"
	KeywordDoubleStrike   Keyword = "Double Strike"
	KeywordMenace         Keyword = "Menace"
	KeywordReach          Keyword = "Reach"
	KeywordFlash          Keyword = "Flash"
	KeywordHexproof       Keyword = "Hexproof"
	KeywordIndestructible Keyword = "Indestructible"
	KeywordDefender       Keyword = "Defender"
	KeywordWard           Keyword = "Ward"
	KeywordFlashback      Keyword = "Flashback"
	KeywordUnearth        Keyword = "Unearth"
	KeywordEscape         Keyword = "Escape"
	KeywordDelve          Keyword = "Delve"
	KeywordConvoke        Keyword = "Convoke"
	KeywordCascade        Keyword = "Cascade"
	KeywordStorm          Keyword = "Storm"
	KeywordProliferate    Keyword = "Proliferate"
	KeywordLandfall       Keyword = "Landfall"
	KeywordConstellation  Keyword = "Constellation"
	KeywordDevotion       Keyword = "Devotion"
	KeywordAnnihilator    Keyword = "Annihilator"
	KeywordInfect         Keyword = "Infect"
	KeywordWither         Keyword = "Wither"
	KeywordAffinity       Keyword = "Affinity"
	KeywordMadness        Keyword = "Madness"
	KeywordOverload       Keyword = "Overload"
	KeywordCrew           Keyword = "Crew"
	KeywordEquip          Keyword = "Equip"
)

type keywordPattern struct {
	re      *regexp.Regexp
	keyword Keyword
}

var keywordPatterns = []keywordPattern{
	{regexp.MustCompile(`(?i)\bflying\b`), KeywordFlying},
	{regexp.MustCompile(`(?i)\btrample\b`), KeywordTrample},
	{regexp.MustCompile(`(?i)\bhaste\b`), KeywordHaste},
	{regexp.MustCompile(`(?i)\bvigilance\b`), KeywordVigilance},
	{regexp.MustCompile(`(?i)\bdeathtouch\b`), KeywordDeathtouch},
	{regexp.MustCompile(`(?i)\blifelink\b`), KeywordLifelink},
	{regexp.MustCompile(`(?i)\bfirst strike\b`), KeywordFirstStrike},
	{regexp.MustCompile(`(?i)\bdouble strike\b`), KeywordDoubleStrike},
	{regexp.MustCompile(`(?i)\bmenace\b`), KeywordMenace},
	{regexp.MustCompile(`(?i)\breach\b`), KeywordReach},
	{regexp.MustCompile(`(?i)\bflash\b`), KeywordFlash},
	{regexp.MustCompile(`(?i)\bhexproof\b`), KeywordHexproof},
	{regexp.MustCompile(`(?i)\bindestructible\b`), KeywordIndestructible},
	{regexp.MustCompile(`(?i)\bdefender\b`), KeywordDefender},
	{regexp.MustCompile(`(?i)\bward\b`), KeywordWard},
	{regexp.MustCompile(`(?i)\bflashback\b`), KeywordFlashback},
	{regexp.MustCompile(`(?i)\bunearth\b`), KeywordUnearth},
	{regexp.MustCompile(`(?i)\bescape\b`), KeywordEscape},
	{regexp.MustCompile(`(?i)\bdelve\b`), KeywordDelve},
	{regexp.MustCompile(`(?i)\bconvoke\b`), KeywordConvoke},
	{regexp.MustCompile(`(?i)\bcascade\b`), KeywordCascade},
	{regexp.MustCompile(`(?i)\bstorm\b`), KeywordStorm},
	{regexp.MustCompile(`(?i)\bproliferate\b`), KeywordProliferate},
	{regexp.MustCompile(`(?i)\blandfall\b`), KeywordLandfall},
	{regexp.MustCompile(`(?i)\bconstellation\b`), KeywordConstellation},
	{regexp.MustCompile(`(?i)\bdevotion\b`), KeywordDevotion},
	{regexp.MustCompile(`(?i)\bannihilator\b`), KeywordAnnihilator},
	{regexp.MustCompile(`(?i)\binfect\b`), KeywordInfect},
	{regexp.MustCompile(`(?i)\bwither\b`), KeywordWither},
	{regexp.MustCompile(`(?i)\baffinity\b`), KeywordAffinity},
	{regexp.MustCompile(`(?i)\bmadness\b`), KeywordMadness},
	{regexp.MustCompile(`(?i)\boverload\b`), KeywordOverload},
	{regexp.MustCompile(`(?i)\bcrew\b`), KeywordCrew},
	{regexp.MustCompile(`(?i)\bequip\b`), KeywordEquip},
}

// commonCreatureTypes is the whitelist used for tribal detection.
var commonCreatureTypes = []string{
	"Human", "Elf", "Goblin", "Zombie", "Vampire", "Wizard", "Soldier",
	"Knight", "Dragon", "Angel", "Demon", "Beast", "Elemental", "Spirit",
	"Warrior", "Cleric", "Rogue", "Shaman", "Merfolk", "Bird", "Cat",
	"Dinosaur", "Sliver", "Ally", "Eldrazi", "Faerie", "Giant", "Horror",
	"Hydra", "Insect", "Ninja", "Pirate", "Rat", "Samurai", "Serpent",
	"Skeleton", "Spider", "Treefolk", "Werewolf", "Wolf", "Artifact",
}

// ExtractKeywords returns the keywords found in the card's oracle text,
// all faces included, deduplicated in pattern order.
func ExtractKeywords(card *cards.Card) []Keyword {
	allText := strings.Join(card.AllOracleText(), " ")

	var keywords []Keyword
	seen := make(map[Keyword]struct{})
	for _, p := range keywordPatterns {
		if !p.re.MatchString(allText) {
			continue
		}
		if _, ok := seen[p.keyword]; ok {
			continue
		}
		seen[p.keyword] = struct{}{}
		keywords = append(keywords, p.keyword)
	}

	return keywords
}

// ExtractCreatureTypes returns the recognized creature types from the
// card's type lines, sorted and deduplicated.
func ExtractCreatureTypes(card *cards.Card) []string {
	var types []string
	seen := make(map[string]struct{})

	for _, typeLine := range card.AllTypeLines() {
		if !strings.Contains(typeLine, "Creature") {
			continue
		}

		// Subtypes follow the em dash.
		parts := strings.SplitN(typeLine, " — ", 2)
		if len(parts) < 2 {
			continue
		}

		for _, word := range strings.Fields(parts[1]) {
			for _, creatureType := range commonCreatureTypes {
				if strings.EqualFold(word, creatureType) {
					if _, ok := seen[creatureType]; !ok {
						seen[creatureType] = struct{}{}
						types = append(types, creatureType)
					}
				}
			}
		}
	}

	sort.Strings(types)
	return types
}

func typeLinesContain(card *cards.Card, substr string) bool {
	for _, t := range card.AllTypeLines() {
		if strings.Contains(t, substr) {
			return true
		}
	}
	return false
}

// IsCreature reports whether any face of the card is a creature.
func IsCreature(card *cards.Card) bool { return typeLinesContain(card, "Creature") }

// IsInstantOrSorcery reports whether any face is an instant or sorcery.
func IsInstantOrSorcery(card *cards.Card) bool {
	return typeLinesContain(card, "Instant") || typeLinesContain(card, "Sorcery")
}

// IsLand reports whether any face is a land.
func IsLand(card *cards.Card) bool { return typeLinesContain(card, "Land") }

// IsArtifact reports whether any face is an artifact.
func IsArtifact(card *cards.Card) bool { return typeLinesContain(card, "Artifact") }

// IsEnchantment reports whether any face is an enchantment.
func IsEnchantment(card *cards.Card) bool { return typeLinesContain(card, "Enchantment") }

// IsEquipment reports whether any face is an Equipment.
func IsEquipment(card *cards.Card) bool { return typeLinesContain(card, "Equipment") }

// IsAura reports whether any face is an Aura.
func IsAura(card *cards.Card) bool { return typeLinesContain(card, "Aura") }

// IsPlaneswalker reports whether any face is a planeswalker.
func IsPlaneswalker(card *cards.Card) bool { return typeLinesContain(card, "Planeswalker") }
