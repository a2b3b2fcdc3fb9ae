package synergy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/cards"
	"github.com/deckwright/deckwright/internal/decklist"
)

// defaultMinThemeCards filters out themes too thin to matter.
const defaultMinThemeCards = 5

// Hub cards are the five most connected cards in the deck.
const hubCardLimit = 5

// Detector analyzes a hydrated decklist for themes and synergies.
type Detector struct {
	// MinThemeCards is the minimum number of distinct cards a theme needs
	// to be reported. Zero means the default of 5.
	MinThemeCards int
}

// NewDetector returns a Detector with default thresholds.
func NewDetector() *Detector {
	return &Detector{MinThemeCards: defaultMinThemeCards}
}

func (d *Detector) minThemeCards() int {
	if d.MinThemeCards > 0 {
		return d.MinThemeCards
	}
	return defaultMinThemeCards
}

// Analyze builds the full synergy matrix for a decklist. Unhydrated
// entries are skipped.
func (d *Detector) Analyze(list *decklist.DeckList) *Matrix {
	m := &Matrix{
		DeckName:     list.Name,
		DeckFormat:   list.Format,
		TotalCards:   list.TotalCards(),
		UniqueCards:  list.UniqueCards(),
		CardProfiles: make(map[string]*Profile),
	}

	d.buildCardProfiles(list, m)
	d.aggregateThemes(list, m)

	if len(m.DetectedThemes) > 0 {
		m.PrimaryTheme = &m.DetectedThemes[0].Theme
	}

	d.buildEdges(m)
	d.computeStats(m)
	d.writeObservations(m)

	return m
}

func (d *Detector) buildCardProfiles(list *decklist.DeckList, m *Matrix) {
	for _, entry := range list.MainboardEntries() {
		if entry.Card == nil {
			continue
		}
		if _, ok := m.CardProfiles[entry.Name]; ok {
			continue
		}

		profile := &Profile{
			CardName: entry.Name,
			Keywords: ExtractKeywords(entry.Card),
		}
		for _, match := range DetectCardThemes(entry.Card) {
			profile.Themes = append(profile.Themes, match.Theme)
			if profile.Role == RoleNone && match.RoleHint != RoleNone {
				profile.Role = match.RoleHint
			}
		}
		m.CardProfiles[entry.Name] = profile
	}
}

func (d *Detector) aggregateThemes(list *decklist.DeckList, m *Matrix) {
	// Entry order keeps per-theme card lists deterministic.
	themeCards := make(map[Theme][]string)
	seen := make(map[Theme]map[string]struct{})

	creatureTypeCounts := make(map[string]int)
	totalCreatures := 0

	for _, entry := range list.MainboardEntries() {
		if entry.Card == nil {
			continue
		}
		profile, ok := m.CardProfiles[entry.Name]
		if !ok {
			continue
		}

		for _, theme := range profile.Themes {
			if seen[theme] == nil {
				seen[theme] = make(map[string]struct{})
			}
			if _, dup := seen[theme][entry.Name]; dup {
				continue
			}
			seen[theme][entry.Name] = struct{}{}
			themeCards[theme] = append(themeCards[theme], entry.Name)
		}

		if IsCreature(entry.Card) {
			totalCreatures += entry.Quantity
			for _, creatureType := range ExtractCreatureTypes(entry.Card) {
				creatureTypeCounts[creatureType] += entry.Quantity
			}
		}
	}

	for _, tribal := range DetectTribalThemes(creatureTypeCounts, totalCreatures) {
		theme := tribal.Theme
		for _, entry := range list.MainboardEntries() {
			if entry.Card == nil {
				continue
			}
			if !containsString(ExtractCreatureTypes(entry.Card), theme.Tribe) {
				continue
			}
			if seen[theme] == nil {
				seen[theme] = make(map[string]struct{})
			}
			if _, dup := seen[theme][entry.Name]; dup {
				continue
			}
			seen[theme][entry.Name] = struct{}{}
			themeCards[theme] = append(themeCards[theme], entry.Name)
		}
	}

	minCards := d.minThemeCards()
	for theme, names := range themeCards {
		if len(names) < minCards {
			continue
		}

		analysis := ThemeAnalysis{
			Theme:     theme,
			CardCount: len(names),
		}
		if m.TotalCards > 0 {
			analysis.Percentage = float64(len(names)) / float64(m.TotalCards)
		}

		for _, name := range names {
			profile := m.CardProfiles[name]
			var card *cards.Card
			for _, entry := range list.MainboardEntries() {
				if entry.Name == name {
					card = entry.Card
					break
				}
			}
			if card == nil || profile == nil {
				continue
			}
			switch ClassifyCardRole(card, theme) {
			case RoleEnabler:
				analysis.Enablers = append(analysis.Enablers, name)
			case RolePayoff:
				analysis.Payoffs = append(analysis.Payoffs, name)
			default:
				analysis.Support = append(analysis.Support, name)
			}
		}

		m.DetectedThemes = append(m.DetectedThemes, analysis)
	}

	sort.Slice(m.DetectedThemes, func(i, j int) bool {
		if m.DetectedThemes[i].CardCount != m.DetectedThemes[j].CardCount {
			return m.DetectedThemes[i].CardCount > m.DetectedThemes[j].CardCount
		}
		return m.DetectedThemes[i].Theme.DisplayName() < m.DetectedThemes[j].Theme.DisplayName()
	})
}

func (d *Detector) buildEdges(m *Matrix) {
	seen := make(map[string]struct{})

	for _, analysis := range m.DetectedThemes {
		names := analysis.AllCards()
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, b := names[i], names[j]
				key := edgeKey(a, b)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}

				relation := RelationSupports
				roleA := roleIn(analysis, a)
				roleB := roleIn(analysis, b)
				switch {
				case roleA == RoleEnabler && roleB == RolePayoff:
					relation = RelationEnables
				case roleA == RolePayoff && roleB == RoleEnabler:
					relation = RelationPayoffFor
				}

				m.Edges = append(m.Edges, Edge{
					CardA:    a,
					CardB:    b,
					Relation: relation,
					Themes:   []Theme{analysis.Theme},
					Strength: 0.5,
					Reason:   fmt.Sprintf("Both support %s theme", analysis.Theme.DisplayName()),
				})
			}
		}
	}
}

func roleIn(analysis ThemeAnalysis, name string) Role {
	if containsString(analysis.Enablers, name) {
		return RoleEnabler
	}
	if containsString(analysis.Payoffs, name) {
		return RolePayoff
	}
	return RoleSupport
}

func edgeKey(a, b string) string {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la > lb {
		la, lb = lb, la
	}
	return la + "|" + lb
}

func (d *Detector) computeStats(m *Matrix) {
	stats := Stats{KeywordDistribution: make(map[Keyword]int)}

	n := m.UniqueCards
	if pairs := n * (n - 1) / 2; pairs > 0 {
		stats.SynergyDensity = float64(len(m.Edges)) / float64(pairs)
	}

	// Coverage is measured against every entry in the list, so unhydrated
	// cards drag it down rather than vanishing from the denominator.
	themed := 0
	for _, profile := range m.CardProfiles {
		if len(profile.Themes) > 0 {
			themed++
		}
		for _, kw := range profile.Keywords {
			stats.KeywordDistribution[kw]++
		}
	}
	if n > 0 {
		stats.ThemeCoverage = float64(themed) / float64(n)
	}

	edgeCounts := make(map[string]int)
	for _, edge := range m.Edges {
		edgeCounts[edge.CardA]++
		edgeCounts[edge.CardB]++
	}

	for name := range m.CardProfiles {
		if edgeCounts[name] == 0 {
			stats.OrphanCards = append(stats.OrphanCards, name)
		}
	}
	sort.Strings(stats.OrphanCards)

	connected := make([]string, 0, len(edgeCounts))
	for name := range edgeCounts {
		connected = append(connected, name)
	}
	sort.Slice(connected, func(i, j int) bool {
		if edgeCounts[connected[i]] != edgeCounts[connected[j]] {
			return edgeCounts[connected[i]] > edgeCounts[connected[j]]
		}
		return connected[i] < connected[j]
	})
	if len(connected) > hubCardLimit {
		connected = connected[:hubCardLimit]
	}
	stats.HubCards = connected

	m.Stats = stats
}

func (d *Detector) writeObservations(m *Matrix) {
	var obs []string

	if len(m.DetectedThemes) > 0 {
		primary := m.DetectedThemes[0]
		obs = append(obs, fmt.Sprintf("Primary theme: %s (%d cards, %.0f%% of deck)",
			primary.Theme.DisplayName(), primary.CardCount, primary.Percentage*100))

		if len(m.DetectedThemes) > 1 {
			var secondary []string
			for _, t := range m.TopThemes(3)[1:] {
				secondary = append(secondary, t.Theme.DisplayName())
			}
			obs = append(obs, fmt.Sprintf("Secondary themes: %s", strings.Join(secondary, ", ")))
		}
	}

	if m.Stats.SynergyDensity < 0.1 {
		obs = append(obs, "Low synergy density. Consider adding more cards that work together.")
	} else if m.Stats.SynergyDensity > 0.3 {
		obs = append(obs, "High synergy density! Cards work well together.")
	}

	if m.Stats.ThemeCoverage < 0.5 {
		obs = append(obs, fmt.Sprintf("%.0f%% of cards don't contribute to any detected theme.",
			(1-m.Stats.ThemeCoverage)*100))
	}

	if len(m.Stats.OrphanCards) > 0 {
		if len(m.Stats.OrphanCards) <= 5 {
			obs = append(obs, fmt.Sprintf("Cards with no detected synergies: %s",
				strings.Join(m.Stats.OrphanCards, ", ")))
		} else {
			obs = append(obs, fmt.Sprintf("%d cards have no detected synergies.", len(m.Stats.OrphanCards)))
		}
	}

	m.Observations = obs
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
