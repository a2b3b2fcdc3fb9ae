package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/deckwright/deckwright/internal/curve"
)

// barWidth is the width of the widest curve bar in Markdown output.
const barWidth = 30

type curveBucketJSON struct {
	CMC              int `json:"cmc"`
	TotalCount       int `json:"total_count"`
	CreatureCount    int `json:"creature_count"`
	NonCreatureCount int `json:"noncreature_count"`
}

type curveJSON struct {
	DeckName    string             `json:"deck_name,omitempty"`
	DeckFormat  string             `json:"deck_format,omitempty"`
	TotalCards  int                `json:"total_cards"`
	UniqueCards int                `json:"unique_cards"`
	Buckets     []curveBucketJSON  `json:"buckets"`
	AverageCMC  float64            `json:"average_cmc"`
	MedianCMC   float64            `json:"median_cmc"`
	ModeCMC     int                `json:"mode_cmc"`
	PipCounts   map[string]float64 `json:"pip_counts"`
}

// Curve exports a curve analysis.
func (e *Exporter) Curve(analysis *curve.Analysis) error {
	return e.export(curveExport(analysis), func(w io.Writer) error {
		return RenderCurveMarkdown(w, analysis)
	})
}

// WriteCurve renders a curve analysis to a writer.
func WriteCurve(w io.Writer, format Format, analysis *curve.Analysis) error {
	return writeTo(w, format, curveExport(analysis), func(w io.Writer) error {
		return RenderCurveMarkdown(w, analysis)
	})
}

func curveExport(analysis *curve.Analysis) *curveJSON {
	out := &curveJSON{
		DeckName:    analysis.DeckName,
		DeckFormat:  analysis.DeckFormat,
		TotalCards:  analysis.TotalCards,
		UniqueCards: analysis.UniqueCards,
		AverageCMC:  analysis.Stats.AverageCMC,
		MedianCMC:   analysis.Stats.MedianCMC,
		ModeCMC:     analysis.Stats.ModeCMC,
		PipCounts:   make(map[string]float64),
	}
	for _, bucket := range analysis.Buckets {
		out.Buckets = append(out.Buckets, curveBucketJSON{
			CMC:              bucket.CMC,
			TotalCount:       bucket.TotalCount,
			CreatureCount:    bucket.CreatureCount,
			NonCreatureCount: bucket.NonCreatureCount,
		})
	}
	for _, color := range analysis.PipBreakdown.Colors() {
		out.PipCounts[color.Name()] = analysis.PipBreakdown[color]
	}
	return out
}

// RenderCurveMarkdown writes the curve analysis as Markdown.
func RenderCurveMarkdown(w io.Writer, analysis *curve.Analysis) error {
	var content strings.Builder

	title := "Mana Curve"
	if analysis.DeckName != "" {
		title = fmt.Sprintf("Mana Curve: %s", analysis.DeckName)
	}
	content.WriteString(fmt.Sprintf("# %s\n\n", title))

	if analysis.DeckFormat != "" {
		content.WriteString(fmt.Sprintf("Format: %s\n", analysis.DeckFormat))
	}
	content.WriteString(fmt.Sprintf("Cards: %d total, %d unique\n\n", analysis.TotalCards, analysis.UniqueCards))

	if len(analysis.Buckets) == 0 {
		content.WriteString("No nonland cards to analyze.\n")
		_, err := io.WriteString(w, content.String())
		return err
	}

	content.WriteString("## Curve\n\n```\n")
	for _, bucket := range analysis.Buckets {
		content.WriteString(fmt.Sprintf("%2d | %-*s %d\n",
			bucket.CMC, barWidth, bar(bucket.TotalCount, analysis.MaxCount), bucket.TotalCount))
	}
	content.WriteString("```\n\n")

	content.WriteString("## Statistics\n\n")
	content.WriteString(fmt.Sprintf("- Average mana value: %.2f\n", analysis.Stats.AverageCMC))
	content.WriteString(fmt.Sprintf("- Median mana value: %.1f\n", analysis.Stats.MedianCMC))
	content.WriteString(fmt.Sprintf("- Most common mana value: %d\n", analysis.Stats.ModeCMC))
	content.WriteString(fmt.Sprintf("- Nonland cards: %d (%d creatures, %d noncreatures)\n",
		analysis.Stats.TotalNonlandCards, analysis.Stats.TotalCreatures, analysis.Stats.TotalNonCreatures))

	if colors := analysis.PipBreakdown.Colors(); len(colors) > 0 {
		content.WriteString("\n## Colored Pips\n\n")
		for _, color := range colors {
			content.WriteString(fmt.Sprintf("- %s: %.1f\n", color.Name(), analysis.PipBreakdown[color]))
		}
	}

	_, err := io.WriteString(w, content.String())
	return err
}

func bar(count, max int) string {
	if max <= 0 || count <= 0 {
		return ""
	}
	width := count * barWidth / max
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}
