package synergy

import (
	"regexp"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/cards"
)

// themeRule detects a theme from oracle text and type line patterns.
// Confidence is the fraction of patterns that match; a rule only fires
// when confidence reaches its minimum.
type themeRule struct {
	theme          Theme
	oraclePatterns []*regexp.Regexp
	typePatterns   []*regexp.Regexp
	minConfidence  float64
	roleHint       Role
}

var themeRules = []themeRule{
	{
		theme: Theme{Kind: ThemeTokens},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)create.*token`),
			regexp.MustCompile(`(?i)token.*enters`),
			regexp.MustCompile(`(?i)for each.*token`),
			regexp.MustCompile(`(?i)tokens you control`),
			regexp.MustCompile(`(?i)creature tokens`),
			regexp.MustCompile(`(?i)put.*token`),
			regexp.MustCompile(`(?i)tokens get`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Counters(CounterPlusOne),
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\+1/\+1 counter`),
			regexp.MustCompile(`(?i)proliferate`),
			regexp.MustCompile(`(?i)with.*counters on`),
			regexp.MustCompile(`(?i)counter on it`),
			regexp.MustCompile(`(?i)distribute.*counters`),
			regexp.MustCompile(`(?i)move.*counter`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeGraveyard},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)from your graveyard`),
			regexp.MustCompile(`(?i)in your graveyard`),
			regexp.MustCompile(`(?i)return.*from.*graveyard`),
			regexp.MustCompile(`(?i)cards in your graveyard`),
			regexp.MustCompile(`(?i)\bflashback\b`),
			regexp.MustCompile(`(?i)\bunearth\b`),
			regexp.MustCompile(`(?i)\bescape\b`),
			regexp.MustCompile(`(?i)\bdelve\b`),
			regexp.MustCompile(`(?i)exile.*from your graveyard`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeSacrifice},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)sacrifice a`),
			regexp.MustCompile(`(?i)sacrifice another`),
			regexp.MustCompile(`(?i)when.*dies`),
			regexp.MustCompile(`(?i)whenever.*dies`),
			regexp.MustCompile(`(?i)sacrifice.*:`),
			regexp.MustCompile(`(?i)you may sacrifice`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeBlink},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)exile.*return.*to the battlefield`),
			regexp.MustCompile(`(?i)flicker`),
			regexp.MustCompile(`(?i)exile.*then return`),
			regexp.MustCompile(`(?i)when.*enters the battlefield`),
			regexp.MustCompile(`(?i)whenever.*enters the battlefield`),
		},
		minConfidence: 0.15,
	},
	{
		theme: Theme{Kind: ThemeRamp},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)search your library for.*land`),
			regexp.MustCompile(`(?i)add.*mana`),
			regexp.MustCompile(`(?i)put.*land.*onto the battlefield`),
			regexp.MustCompile(`(?i)additional land`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeDraw},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)draw.*card`),
			regexp.MustCompile(`(?i)draws.*card`),
			regexp.MustCompile(`(?i)whenever you draw`),
			regexp.MustCompile(`(?i)for each card you`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeRemoval},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)destroy target`),
			regexp.MustCompile(`(?i)exile target`),
			regexp.MustCompile(`(?i)deals.*damage to`),
			regexp.MustCompile(`(?i)target creature gets -`),
			regexp.MustCompile(`(?i)return target.*to.*owner`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeLifegain},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)you gain.*life`),
			regexp.MustCompile(`(?i)gain.*life`),
			regexp.MustCompile(`(?i)whenever you gain life`),
			regexp.MustCompile(`(?i)\blifelink\b`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeDiscard},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)target.*discard`),
			regexp.MustCompile(`(?i)opponent.*discard`),
			regexp.MustCompile(`(?i)whenever.*discard`),
			regexp.MustCompile(`(?i)discard a card`),
			regexp.MustCompile(`(?i)\bmadness\b`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeMill},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)mill`),
			regexp.MustCompile(`(?i)put.*cards from.*library into.*graveyard`),
			regexp.MustCompile(`(?i)cards in your library`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeReanimator},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)return.*creature.*from.*graveyard.*to the battlefield`),
			regexp.MustCompile(`(?i)put.*creature.*from.*graveyard onto the battlefield`),
			regexp.MustCompile(`(?i)reanimate`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeSpellslinger},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)whenever you cast an instant or sorcery`),
			regexp.MustCompile(`(?i)instant and sorcery`),
			regexp.MustCompile(`(?i)noncreature spell`),
			regexp.MustCompile(`(?i)\bstorm\b`),
			regexp.MustCompile(`(?i)copy.*instant`),
			regexp.MustCompile(`(?i)copy.*sorcery`),
		},
		minConfidence: 0.1,
	},
	{
		theme: Theme{Kind: ThemeAristocrats},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)whenever.*creature.*dies`),
			regexp.MustCompile(`(?i)whenever another.*dies`),
			regexp.MustCompile(`(?i)sacrifice.*creature`),
		},
		minConfidence: 0.15,
	},
	{
		theme: Theme{Kind: ThemeVoltron},
		oraclePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)equipped creature`),
			regexp.MustCompile(`(?i)enchanted creature`),
			regexp.MustCompile(`(?i)commander deals combat damage`),
		},
		typePatterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)Equipment`),
			regexp.MustCompile(`(?i)Aura`),
		},
		minConfidence: 0.1,
	},
}

// ThemeMatch is a theme detected on a single card.
type ThemeMatch struct {
	Theme      Theme
	Confidence float64
	RoleHint   Role
}

// DetectCardThemes runs the rule table over one card and layers in
// type-line-derived themes.
func DetectCardThemes(card *cards.Card) []ThemeMatch {
	var matches []ThemeMatch

	allText := strings.Join(card.AllOracleText(), " ")
	allTypes := strings.Join(card.AllTypeLines(), " ")
	lowerText := strings.ToLower(allText)

	for _, rule := range themeRules {
		total := len(rule.oraclePatterns) + len(rule.typePatterns)
		hits := 0
		for _, p := range rule.oraclePatterns {
			if p.MatchString(allText) {
				hits++
			}
		}
		for _, p := range rule.typePatterns {
			if p.MatchString(allTypes) {
				hits++
			}
		}

		if hits == 0 {
			continue
		}
		confidence := float64(hits) / float64(total)
		if confidence >= rule.minConfidence {
			matches = append(matches, ThemeMatch{Theme: rule.theme, Confidence: confidence, RoleHint: rule.roleHint})
		}
	}

	// Type-based themes on top of the text rules.
	if IsEquipment(card) {
		matches = append(matches, ThemeMatch{Theme: Theme{Kind: ThemeEquipment}, Confidence: 1.0, RoleHint: RoleSupport})
	}
	if IsAura(card) {
		matches = append(matches, ThemeMatch{Theme: Theme{Kind: ThemeAuras}, Confidence: 1.0, RoleHint: RoleSupport})
	}
	if IsArtifact(card) && !IsEquipment(card) && strings.Contains(lowerText, "artifact") {
		matches = append(matches, ThemeMatch{Theme: Theme{Kind: ThemeArtifacts}, Confidence: 0.5})
	}
	if IsEnchantment(card) && !IsAura(card) && strings.Contains(lowerText, "enchantment") {
		matches = append(matches, ThemeMatch{Theme: Theme{Kind: ThemeEnchantments}, Confidence: 0.5})
	}
	if IsLand(card) && strings.Contains(lowerText, "land") {
		matches = append(matches, ThemeMatch{Theme: Theme{Kind: ThemeLands}, Confidence: 0.5})
	}

	return matches
}

// TribalTheme is a tribe that clears the tribal thresholds.
type TribalTheme struct {
	Theme      Theme
	Count      int
	Percentage float64
}

// Tribal thresholds: a tribe is a theme at 8+ creatures or 30%+ of the
// creature base.
const (
	tribalMinCount      = 8
	tribalMinPercentage = 0.30
)

// DetectTribalThemes finds tribes that dominate the creature base,
// sorted by count descending with ties broken by name.
func DetectTribalThemes(creatureTypeCounts map[string]int, totalCreatures int) []TribalTheme {
	var tribal []TribalTheme

	for creatureType, count := range creatureTypeCounts {
		percentage := 0.0
		if totalCreatures > 0 {
			percentage = float64(count) / float64(totalCreatures)
		}

		if count >= tribalMinCount || percentage >= tribalMinPercentage {
			tribal = append(tribal, TribalTheme{
				Theme:      Tribal(creatureType),
				Count:      count,
				Percentage: percentage,
			})
		}
	}

	sort.Slice(tribal, func(i, j int) bool {
		if tribal[i].Count != tribal[j].Count {
			return tribal[i].Count > tribal[j].Count
		}
		return tribal[i].Theme.Tribe < tribal[j].Theme.Tribe
	})
	return tribal
}

// ClassifyCardRole decides whether a card enables, pays off, or merely
// supports a theme. Enabler checks run before payoff checks so cards
// that do both count as enablers.
func ClassifyCardRole(card *cards.Card, theme Theme) Role {
	allText := strings.ToLower(strings.Join(card.AllOracleText(), " "))

	switch theme.Kind {
	case ThemeTokens:
		switch {
		case strings.Contains(allText, "create") && strings.Contains(allText, "token"):
			return RoleEnabler
		case strings.Contains(allText, "tokens you control"),
			strings.Contains(allText, "for each"),
			strings.Contains(allText, "tokens get"):
			return RolePayoff
		}
	case ThemeCounters:
		switch {
		case strings.Contains(allText, "put") && strings.Contains(allText, "counter"):
			return RoleEnabler
		case strings.Contains(allText, "with") && strings.Contains(allText, "counter"):
			return RolePayoff
		}
	case ThemeGraveyard:
		switch {
		case strings.Contains(allText, "mill"), strings.Contains(allText, "discard"):
			return RoleEnabler
		case strings.Contains(allText, "from your graveyard"),
			strings.Contains(allText, "flashback"),
			strings.Contains(allText, "escape"):
			return RolePayoff
		}
	case ThemeSacrifice:
		switch {
		case strings.Contains(allText, "create") && strings.Contains(allText, "token"):
			return RoleEnabler
		case strings.Contains(allText, "when") && strings.Contains(allText, "dies"):
			return RolePayoff
		}
	case ThemeLifegain:
		switch {
		case strings.Contains(allText, "gain") && strings.Contains(allText, "life"):
			return RoleEnabler
		case strings.Contains(allText, "whenever you gain life"):
			return RolePayoff
		}
	}

	return RoleSupport
}
