package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/deckwright/deckwright/internal/curve"
	"github.com/deckwright/deckwright/internal/deck"
)

// manaBaseJSON is the JSON shape for a mana base export.
type manaBaseJSON struct {
	DeckName    string         `json:"deck_name,omitempty"`
	DeckFormat  string         `json:"deck_format,omitempty"`
	TargetLands int            `json:"target_lands"`
	LandSource  string         `json:"land_source"`
	ManaBase    *deck.ManaBase `json:"mana_base"`
	PipCounts   map[string]int `json:"pip_counts"`
}

// ManaBase exports a mana base recommendation. The analysis must carry
// an attached ManaBase.
func (e *Exporter) ManaBase(analysis *curve.Analysis) error {
	if analysis.ManaBase == nil {
		return fmt.Errorf("analysis has no mana base attached")
	}
	return e.export(manaBaseExport(analysis), func(w io.Writer) error {
		return RenderManaBaseMarkdown(w, analysis)
	})
}

// WriteManaBase renders a mana base recommendation to a writer.
func WriteManaBase(w io.Writer, format Format, analysis *curve.Analysis) error {
	if analysis.ManaBase == nil {
		return fmt.Errorf("analysis has no mana base attached")
	}
	return writeTo(w, format, manaBaseExport(analysis), func(w io.Writer) error {
		return RenderManaBaseMarkdown(w, analysis)
	})
}

func manaBaseExport(analysis *curve.Analysis) *manaBaseJSON {
	pips := make(map[string]int)
	for color, n := range analysis.PipBreakdown.ManaSymbols() {
		pips[color.Name()] = n
	}

	source := ""
	if analysis.LandSource != nil {
		source = analysis.LandSource.Description()
	}

	return &manaBaseJSON{
		DeckName:    analysis.DeckName,
		DeckFormat:  analysis.DeckFormat,
		TargetLands: analysis.TargetLands,
		LandSource:  source,
		ManaBase:    analysis.ManaBase,
		PipCounts:   pips,
	}
}

// RenderManaBaseMarkdown writes the mana base recommendation as Markdown.
func RenderManaBaseMarkdown(w io.Writer, analysis *curve.Analysis) error {
	base := analysis.ManaBase
	var content strings.Builder

	title := "Mana Base"
	if analysis.DeckName != "" {
		title = fmt.Sprintf("Mana Base: %s", analysis.DeckName)
	}
	content.WriteString(fmt.Sprintf("# %s\n\n", title))

	if analysis.DeckFormat != "" {
		content.WriteString(fmt.Sprintf("Format: %s\n", analysis.DeckFormat))
	}
	if analysis.LandSource != nil {
		content.WriteString(fmt.Sprintf("Target lands: %d (%s)\n", analysis.TargetLands, analysis.LandSource.Description()))
	} else {
		content.WriteString(fmt.Sprintf("Target lands: %d\n", analysis.TargetLands))
	}
	content.WriteString("\n## Recommended Basics\n\n")
	content.WriteString("| Land | Count | Pips | Share |\n")
	content.WriteString("|------|------:|-----:|------:|\n")

	symbols := analysis.PipBreakdown.ManaSymbols()
	for _, color := range deck.AllColors() {
		count, ok := base.Basics[color]
		if !ok {
			continue
		}
		share := base.ColorPercentages[color]
		content.WriteString(fmt.Sprintf("| %s | %d | %d | %.1f%% |\n",
			color.BasicLand(), count, symbols[color], share*100))
	}
	content.WriteString(fmt.Sprintf("\nTotal basics: %d\n", base.TotalBasics()))

	if len(base.Duals) > 0 {
		content.WriteString("\n## Multicolor Lands\n\n")
		for _, dual := range base.Duals {
			var colors []string
			for _, c := range dual.Colors {
				colors = append(colors, c.Symbol())
			}
			content.WriteString(fmt.Sprintf("- %dx %s (%s)\n", dual.Count, dual.Name, strings.Join(colors, "/")))
		}
	}

	if len(base.Recommendations) > 0 {
		content.WriteString("\n## Notes\n\n")
		for _, rec := range base.Recommendations {
			content.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	_, err := io.WriteString(w, content.String())
	return err
}
