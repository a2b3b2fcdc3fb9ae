package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deckwright/deckwright/internal/curve"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/synergy"
)

// ExplanationConfig configures the explanation generator.
type ExplanationConfig struct {
	// UseLLM enables LLM-powered explanations when available.
	UseLLM bool

	// Temperature controls creativity in LLM responses.
	Temperature float64

	// MaxTokens bounds the length of generated explanations.
	MaxTokens int

	// FallbackToTemplate uses templates when the LLM is unavailable.
	FallbackToTemplate bool
}

// DefaultExplanationConfig returns sensible defaults.
func DefaultExplanationConfig() *ExplanationConfig {
	return &ExplanationConfig{
		UseLLM:             true,
		Temperature:        0.7,
		MaxTokens:          400,
		FallbackToTemplate: true,
	}
}

// Explanation is generated commentary on an analysis result.
type Explanation struct {
	Text   string `json:"text"`
	Source string `json:"source"` // "llm" or "template"
}

// ExplanationGenerator turns analysis results into prose commentary.
type ExplanationGenerator struct {
	config *ExplanationConfig
	client *OllamaClient
}

// NewExplanationGenerator creates an explanation generator. client may
// be nil to force template output.
func NewExplanationGenerator(client *OllamaClient, config *ExplanationConfig) *ExplanationGenerator {
	if config == nil {
		config = DefaultExplanationConfig()
	}
	return &ExplanationGenerator{config: config, client: client}
}

const systemPrompt = `You are a Magic: The Gathering deck building assistant.
Explain analysis results concisely and helpfully.
Focus on mana consistency, curve shape, and card synergies.
Keep explanations under 150 words.
Don't use markdown formatting.`

// ExplainManaBase generates commentary on a mana base recommendation.
func (g *ExplanationGenerator) ExplainManaBase(ctx context.Context, base *deck.ManaBase, analysis *curve.Analysis) (*Explanation, error) {
	if g.llmReady() {
		prompt := g.manaBasePrompt(base, analysis)
		if text, err := g.generate(ctx, prompt); err == nil {
			return &Explanation{Text: text, Source: "llm"}, nil
		}
	}

	if g.config.FallbackToTemplate {
		return &Explanation{Text: g.manaBaseTemplate(base, analysis), Source: "template"}, nil
	}
	return nil, fmt.Errorf("no explanation method available")
}

// ExplainSynergy generates commentary on a synergy matrix.
func (g *ExplanationGenerator) ExplainSynergy(ctx context.Context, matrix *synergy.Matrix) (*Explanation, error) {
	if g.llmReady() {
		prompt := g.synergyPrompt(matrix)
		if text, err := g.generate(ctx, prompt); err == nil {
			return &Explanation{Text: text, Source: "llm"}, nil
		}
	}

	if g.config.FallbackToTemplate {
		return &Explanation{Text: g.synergyTemplate(matrix), Source: "template"}, nil
	}
	return nil, fmt.Errorf("no explanation method available")
}

// IsLLMAvailable returns whether LLM explanations can be produced.
func (g *ExplanationGenerator) IsLLMAvailable() bool {
	return g.client != nil && g.client.IsAvailable()
}

func (g *ExplanationGenerator) llmReady() bool {
	return g.config.UseLLM && g.IsLLMAvailable()
}

func (g *ExplanationGenerator) generate(ctx context.Context, prompt string) (string, error) {
	options := &GenerateOptions{
		Temperature: g.config.Temperature,
		NumPredict:  g.config.MaxTokens,
	}

	resp, err := g.client.GenerateWithSystem(ctx, systemPrompt, prompt, options)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Response)

	// Strip leaked thinking tags from reasoning models.
	if idx := strings.Index(text, "</think>"); idx != -1 {
		text = strings.TrimSpace(text[idx+len("</think>"):])
	}
	return text, nil
}

func (g *ExplanationGenerator) manaBasePrompt(base *deck.ManaBase, analysis *curve.Analysis) string {
	var basics []string
	for _, color := range deck.AllColors() {
		if n := base.Basics[color]; n > 0 {
			basics = append(basics, fmt.Sprintf("%d %s", n, color.BasicLand()))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain this mana base recommendation:\n\n")
	fmt.Fprintf(&sb, "Deck: %s (%s)\n", analysis.DeckName, analysis.DeckFormat)
	fmt.Fprintf(&sb, "Target lands: %d (%s)\n", analysis.TargetLands, landSourceDescription(analysis))
	fmt.Fprintf(&sb, "Recommended basics: %s\n", strings.Join(basics, ", "))
	fmt.Fprintf(&sb, "Average mana value: %.2f\n", analysis.Stats.AverageCMC)
	for _, color := range analysis.PipBreakdown.Colors() {
		fmt.Fprintf(&sb, "%s pips: %.1f\n", color, analysis.PipBreakdown[color])
	}
	sb.WriteString("\nWrite a brief explanation of why this split suits the deck.")
	return sb.String()
}

func (g *ExplanationGenerator) synergyPrompt(matrix *synergy.Matrix) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Explain this deck's synergy analysis:\n\n")
	fmt.Fprintf(&sb, "Deck: %s (%s, %d cards)\n", matrix.DeckName, matrix.DeckFormat, matrix.TotalCards)
	for _, theme := range matrix.TopThemes(3) {
		fmt.Fprintf(&sb, "Theme: %s (%d cards)\n", theme.Theme.DisplayName(), theme.CardCount)
	}
	fmt.Fprintf(&sb, "Synergy density: %.2f\n", matrix.Stats.SynergyDensity)
	if len(matrix.Stats.HubCards) > 0 {
		fmt.Fprintf(&sb, "Most connected cards: %s\n", strings.Join(matrix.Stats.HubCards, ", "))
	}
	sb.WriteString("\nWrite a brief explanation of how the deck's pieces work together.")
	return sb.String()
}

func (g *ExplanationGenerator) manaBaseTemplate(base *deck.ManaBase, analysis *curve.Analysis) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("This deck wants %d lands (%s).",
		analysis.TargetLands, landSourceDescription(analysis)))

	total := analysis.PipBreakdown.Total()
	if total > 0 {
		heaviest := analysis.PipBreakdown.Colors()[0]
		for _, color := range analysis.PipBreakdown.Colors() {
			if analysis.PipBreakdown[color] > analysis.PipBreakdown[heaviest] {
				heaviest = color
			}
		}
		share := analysis.PipBreakdown[heaviest] / total
		parts = append(parts, fmt.Sprintf("%s carries the heaviest color requirement at %.0f%% of colored pips, so it gets the largest share of basics.",
			heaviest, share*100))
	}

	if len(base.Duals) > 0 {
		parts = append(parts, fmt.Sprintf("%d multicolor lands already in the list reduce the basic land count accordingly.",
			base.TotalDuals()))
	}

	if analysis.Stats.AverageCMC > 0 {
		if analysis.Stats.AverageCMC < 2.5 {
			parts = append(parts, "The low curve tolerates a slightly leaner mana base.")
		} else if analysis.Stats.AverageCMC > 3.5 {
			parts = append(parts, "The high curve makes hitting every land drop important.")
		}
	}

	return strings.Join(parts, " ")
}

func (g *ExplanationGenerator) synergyTemplate(matrix *synergy.Matrix) string {
	if len(matrix.DetectedThemes) == 0 {
		return "No dominant theme was detected. The deck reads as a collection of individually strong cards rather than a synergy engine."
	}

	var parts []string
	primary := matrix.DetectedThemes[0]
	parts = append(parts, fmt.Sprintf("The deck is built around %s with %d contributing cards.",
		primary.Theme.DisplayName(), primary.CardCount))

	if len(primary.Enablers) > 0 && len(primary.Payoffs) > 0 {
		parts = append(parts, fmt.Sprintf("It has both enablers (%d) and payoffs (%d), which keeps the theme functional through disruption.",
			len(primary.Enablers), len(primary.Payoffs)))
	} else if len(primary.Payoffs) == 0 {
		parts = append(parts, "It leans on enablers without many payoffs, so the theme may not convert into wins.")
	}

	if matrix.Stats.SynergyDensity > 0.3 {
		parts = append(parts, "Overall synergy density is high.")
	} else if matrix.Stats.SynergyDensity < 0.1 {
		parts = append(parts, "Overall synergy density is low; many cards stand alone.")
	}

	if n := len(matrix.Stats.OrphanCards); n > 0 {
		parts = append(parts, fmt.Sprintf("%d cards contribute to no detected theme and are the first candidates to cut.", n))
	}

	return strings.Join(parts, " ")
}

func landSourceDescription(analysis *curve.Analysis) string {
	if analysis.LandSource == nil {
		return "unspecified"
	}
	return analysis.LandSource.Description()
}

// WaitForModel polls until the model is ready or the context expires.
// Useful right after starting a local Ollama instance.
func (g *ExplanationGenerator) WaitForModel(ctx context.Context, interval time.Duration) error {
	if g.client == nil {
		return fmt.Errorf("no LLM client configured")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status := g.client.CheckAvailability(ctx)
		if status.Available && status.ModelReady {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
