package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/deckwright/deckwright/internal/synergy"
)

type synergyThemeJSON struct {
	Theme      string   `json:"theme"`
	CardCount  int      `json:"card_count"`
	Percentage float64  `json:"percentage"`
	Enablers   []string `json:"enablers,omitempty"`
	Payoffs    []string `json:"payoffs,omitempty"`
	Support    []string `json:"support,omitempty"`
}

type synergyJSON struct {
	DeckName       string             `json:"deck_name,omitempty"`
	DeckFormat     string             `json:"deck_format,omitempty"`
	TotalCards     int                `json:"total_cards"`
	UniqueCards    int                `json:"unique_cards"`
	PrimaryTheme   string             `json:"primary_theme,omitempty"`
	Themes         []synergyThemeJSON `json:"themes"`
	SynergyDensity float64            `json:"synergy_density"`
	ThemeCoverage  float64            `json:"theme_coverage"`
	HubCards       []string           `json:"hub_cards,omitempty"`
	OrphanCards    []string           `json:"orphan_cards,omitempty"`
	Observations   []string           `json:"observations,omitempty"`
}

// Synergy exports a synergy matrix.
func (e *Exporter) Synergy(matrix *synergy.Matrix) error {
	return e.export(synergyExport(matrix), func(w io.Writer) error {
		return RenderSynergyMarkdown(w, matrix)
	})
}

// WriteSynergy renders a synergy matrix to a writer.
func WriteSynergy(w io.Writer, format Format, matrix *synergy.Matrix) error {
	return writeTo(w, format, synergyExport(matrix), func(w io.Writer) error {
		return RenderSynergyMarkdown(w, matrix)
	})
}

func synergyExport(matrix *synergy.Matrix) *synergyJSON {
	out := &synergyJSON{
		DeckName:       matrix.DeckName,
		DeckFormat:     matrix.DeckFormat,
		TotalCards:     matrix.TotalCards,
		UniqueCards:    matrix.UniqueCards,
		SynergyDensity: matrix.Stats.SynergyDensity,
		ThemeCoverage:  matrix.Stats.ThemeCoverage,
		HubCards:       matrix.Stats.HubCards,
		OrphanCards:    matrix.Stats.OrphanCards,
		Observations:   matrix.Observations,
	}
	if matrix.PrimaryTheme != nil {
		out.PrimaryTheme = matrix.PrimaryTheme.DisplayName()
	}
	for _, theme := range matrix.DetectedThemes {
		out.Themes = append(out.Themes, synergyThemeJSON{
			Theme:      theme.Theme.DisplayName(),
			CardCount:  theme.CardCount,
			Percentage: theme.Percentage,
			Enablers:   theme.Enablers,
			Payoffs:    theme.Payoffs,
			Support:    theme.Support,
		})
	}
	return out
}

// RenderSynergyMarkdown writes the synergy analysis as Markdown.
func RenderSynergyMarkdown(w io.Writer, matrix *synergy.Matrix) error {
	var content strings.Builder

	title := "Synergy Analysis"
	if matrix.DeckName != "" {
		title = fmt.Sprintf("Synergy Analysis: %s", matrix.DeckName)
	}
	content.WriteString(fmt.Sprintf("# %s\n\n", title))

	if matrix.DeckFormat != "" {
		content.WriteString(fmt.Sprintf("Format: %s\n", matrix.DeckFormat))
	}
	content.WriteString(fmt.Sprintf("Cards: %d total, %d unique\n\n", matrix.TotalCards, matrix.UniqueCards))

	if len(matrix.DetectedThemes) == 0 {
		content.WriteString("No significant themes detected.\n")
		_, err := io.WriteString(w, content.String())
		return err
	}

	content.WriteString("## Themes\n\n")
	content.WriteString("| Theme | Cards | Share | Enablers | Payoffs | Support |\n")
	content.WriteString("|-------|------:|------:|---------:|--------:|--------:|\n")
	for _, theme := range matrix.DetectedThemes {
		content.WriteString(fmt.Sprintf("| %s | %d | %.0f%% | %d | %d | %d |\n",
			theme.Theme.DisplayName(), theme.CardCount, theme.Percentage*100,
			len(theme.Enablers), len(theme.Payoffs), len(theme.Support)))
	}

	content.WriteString(fmt.Sprintf("\nSynergy density: %.2f\n", matrix.Stats.SynergyDensity))
	content.WriteString(fmt.Sprintf("Theme coverage: %.0f%%\n", matrix.Stats.ThemeCoverage*100))

	if len(matrix.Stats.HubCards) > 0 {
		content.WriteString("\n## Hub Cards\n\n")
		for _, name := range matrix.Stats.HubCards {
			content.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}

	if len(matrix.Stats.OrphanCards) > 0 {
		content.WriteString("\n## Cards With No Detected Synergies\n\n")
		for _, name := range matrix.Stats.OrphanCards {
			content.WriteString(fmt.Sprintf("- %s\n", name))
		}
	}

	if len(matrix.Stats.KeywordDistribution) > 0 {
		content.WriteString("\n## Keywords\n\n")
		type kwCount struct {
			keyword synergy.Keyword
			count   int
		}
		counts := make([]kwCount, 0, len(matrix.Stats.KeywordDistribution))
		for kw, n := range matrix.Stats.KeywordDistribution {
			counts = append(counts, kwCount{kw, n})
		}
		sort.Slice(counts, func(i, j int) bool {
			if counts[i].count != counts[j].count {
				return counts[i].count > counts[j].count
			}
			return counts[i].keyword < counts[j].keyword
		})
		for _, kc := range counts {
			content.WriteString(fmt.Sprintf("- %s: %d\n", kc.keyword, kc.count))
		}
	}

	if len(matrix.Observations) > 0 {
		content.WriteString("\n## Observations\n\n")
		for _, obs := range matrix.Observations {
			content.WriteString(fmt.Sprintf("- %s\n", obs))
		}
	}

	_, err := io.WriteString(w, content.String())
	return err
}
