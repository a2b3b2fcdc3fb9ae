// Package synergy detects deck themes, card roles, and card-to-card
// synergies using pattern rules over oracle text and type lines.
package synergy

import "fmt"

// CounterType distinguishes counter-based themes.
type CounterType string

const (
	CounterPlusOne  CounterType = "+1/+1"
	CounterMinusOne CounterType = "-1/-1"
	CounterLoyalty  CounterType = "Loyalty"
)

// ThemeKind enumerates the mechanical and strategy themes the detector
// recognizes.
type ThemeKind int

const (
	ThemeTokens ThemeKind = iota
	ThemeCounters
	ThemeGraveyard
	ThemeSacrifice
	ThemeBlink
	ThemeRamp
	ThemeDraw
	ThemeRemoval
	ThemeLifegain
	ThemeDiscard
	ThemeMill
	ThemeEquipment
	ThemeAuras
	ThemeArtifacts
	ThemeEnchantments
	ThemeLands
	ThemeTribal
	ThemeReanimator
	ThemeSpellslinger
	ThemeAristocrats
	ThemeVoltron
	ThemeCustom
)

// Theme is a detected deck theme. Counters carries a CounterType, Tribal a
// tribe name, and Custom a free-form label. Theme is comparable, so it can
// key maps directly.
type Theme struct {
	Kind    ThemeKind
	Counter CounterType // set for ThemeCounters
	Tribe   string      // set for ThemeTribal
	Custom  string      // set for ThemeCustom
}

// Tribal builds a tribal theme for the given creature type.
func Tribal(tribe string) Theme {
	return Theme{Kind: ThemeTribal, Tribe: tribe}
}

// Counters builds a counter theme for the given counter type.
func Counters(ct CounterType) Theme {
	return Theme{Kind: ThemeCounters, Counter: ct}
}

// DisplayName renders the theme for humans.
func (t Theme) DisplayName() string {
	switch t.Kind {
	case ThemeTokens:
		return "Tokens"
	case ThemeCounters:
		return fmt.Sprintf("%s Counters", t.Counter)
	case ThemeGraveyard:
		return "Graveyard"
	case ThemeSacrifice:
		return "Sacrifice"
	case ThemeBlink:
		return "Blink/Flicker"
	case ThemeRamp:
		return "Ramp"
	case ThemeDraw:
		return "Card Draw"
	case ThemeRemoval:
		return "Removal"
	case ThemeLifegain:
		return "Lifegain"
	case ThemeDiscard:
		return "Discard"
	case ThemeMill:
		return "Mill"
	case ThemeEquipment:
		return "Equipment"
	case ThemeAuras:
		return "Auras"
	case ThemeArtifacts:
		return "Artifacts Matter"
	case ThemeEnchantments:
		return "Enchantments Matter"
	case ThemeLands:
		return "Lands Matter"
	case ThemeTribal:
		return fmt.Sprintf("%s Tribal", t.Tribe)
	case ThemeReanimator:
		return "Reanimator"
	case ThemeSpellslinger:
		return "Spellslinger"
	case ThemeAristocrats:
		return "Aristocrats"
	case ThemeVoltron:
		return "Voltron"
	default:
		return t.Custom
	}
}

// Keyword is an MTG keyword ability detected from oracle text.
type Keyword string

// Role is a card's function within a theme.
type Role int

const (
	RoleNone Role = iota
	RoleEnabler
	RolePayoff
	RoleSupport
)

// String returns the role's display name.
func (r Role) String() string {
	switch r {
	case RoleEnabler:
		return "Enabler"
	case RolePayoff:
		return "Payoff"
	case RoleSupport:
		return "Support"
	default:
		return "None"
	}
}

// Relation describes how two cards connect.
type Relation int

const (
	RelationSupports Relation = iota
	RelationEnables
	RelationPayoffFor
	RelationCombos
)

// String returns the relation's display name.
func (r Relation) String() string {
	switch r {
	case RelationEnables:
		return "Enables"
	case RelationPayoffFor:
		return "Payoff For"
	case RelationCombos:
		return "Combos With"
	default:
		return "Supports"
	}
}

// Profile is a card's place in the deck's synergy web.
type Profile struct {
	CardName string
	Themes   []Theme
	Keywords []Keyword
	Role     Role
}

// Edge is a synergy connection between two cards.
type Edge struct {
	CardA    string
	CardB    string
	Relation Relation
	Themes   []Theme
	Strength float64
	Reason   string
}

// ThemeAnalysis summarizes one detected theme.
type ThemeAnalysis struct {
	Theme      Theme
	CardCount  int
	Percentage float64
	Enablers   []string
	Payoffs    []string
	Support    []string
}

// AllCards returns every card in the theme, enablers first.
func (a *ThemeAnalysis) AllCards() []string {
	cards := make([]string, 0, len(a.Enablers)+len(a.Payoffs)+len(a.Support))
	cards = append(cards, a.Enablers...)
	cards = append(cards, a.Payoffs...)
	cards = append(cards, a.Support...)
	return cards
}

// Stats holds deck-wide synergy metrics.
type Stats struct {
	// SynergyDensity is the ratio of edges to possible card pairs.
	SynergyDensity float64
	// ThemeCoverage is the share of cards in at least one theme.
	ThemeCoverage float64
	// OrphanCards have no synergy connections, sorted by name.
	OrphanCards []string
	// HubCards are the most-connected cards, up to five.
	HubCards            []string
	KeywordDistribution map[Keyword]int
}

// Matrix is the complete synergy analysis result.
type Matrix struct {
	DeckName    string
	DeckFormat  string
	TotalCards  int
	UniqueCards int

	DetectedThemes []ThemeAnalysis
	PrimaryTheme   *Theme
	CardProfiles   map[string]*Profile
	Edges          []Edge
	Stats          Stats
	Observations   []string
}

// TopThemes returns the first n detected themes; they are already sorted
// by card count descending.
func (m *Matrix) TopThemes(n int) []ThemeAnalysis {
	if n > len(m.DetectedThemes) {
		n = len(m.DetectedThemes)
	}
	return m.DetectedThemes[:n]
}
