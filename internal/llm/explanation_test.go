package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckwright/deckwright/internal/curve"
	"github.com/deckwright/deckwright/internal/deck"
	"github.com/deckwright/deckwright/internal/synergy"
)

func TestExplainManaBase_TemplateFallback(t *testing.T) {
	gen := NewExplanationGenerator(nil, nil)

	base := &deck.ManaBase{
		Basics: map[deck.Color]int{deck.Blue: 14, deck.Black: 10},
	}
	analysis := &curve.Analysis{
		DeckName:    "Dimir Control",
		TargetLands: 24,
		LandSource:  &curve.LandCountSource{Kind: curve.LandsDetected, Detected: 24},
		PipBreakdown: curve.PipBreakdown{
			deck.Blue:  18,
			deck.Black: 9,
		},
	}

	explanation, err := gen.ExplainManaBase(context.Background(), base, analysis)

	require.NoError(t, err)
	assert.Equal(t, "template", explanation.Source)
	assert.Contains(t, explanation.Text, "24 lands")
	assert.Contains(t, explanation.Text, "Blue carries the heaviest color requirement")
}

func TestExplainManaBase_NoFallbackErrors(t *testing.T) {
	gen := NewExplanationGenerator(nil, &ExplanationConfig{UseLLM: true, FallbackToTemplate: false})

	_, err := gen.ExplainManaBase(context.Background(), &deck.ManaBase{}, &curve.Analysis{})

	assert.Error(t, err)
}

func TestExplainSynergy_TemplateWithThemes(t *testing.T) {
	gen := NewExplanationGenerator(nil, nil)

	matrix := &synergy.Matrix{
		DetectedThemes: []synergy.ThemeAnalysis{
			{
				Theme:     synergy.Theme{Kind: synergy.ThemeTokens},
				CardCount: 12,
				Enablers:  []string{"A", "B"},
				Payoffs:   []string{"C"},
			},
		},
		Stats: synergy.Stats{SynergyDensity: 0.45, OrphanCards: []string{"X", "Y"}},
	}

	explanation, err := gen.ExplainSynergy(context.Background(), matrix)

	require.NoError(t, err)
	assert.Equal(t, "template", explanation.Source)
	assert.Contains(t, explanation.Text, "built around Tokens with 12 contributing cards")
	assert.Contains(t, explanation.Text, "enablers (2) and payoffs (1)")
	assert.Contains(t, explanation.Text, "synergy density is high")
	assert.Contains(t, explanation.Text, "2 cards contribute to no detected theme")
}

func TestExplainSynergy_NoThemes(t *testing.T) {
	gen := NewExplanationGenerator(nil, nil)

	explanation, err := gen.ExplainSynergy(context.Background(), &synergy.Matrix{})

	require.NoError(t, err)
	assert.Contains(t, explanation.Text, "No dominant theme")
}

func TestExplainManaBase_UsesLLMWhenAvailable(t *testing.T) {
	server := ollamaServer(t, "llama3.2:latest")
	client := NewOllamaClient(testConfig(server.URL))
	client.CheckAvailability(context.Background())

	gen := NewExplanationGenerator(client, nil)

	explanation, err := gen.ExplainManaBase(context.Background(), &deck.ManaBase{}, &curve.Analysis{})

	require.NoError(t, err)
	assert.Equal(t, "llm", explanation.Source)
	assert.Equal(t, "Generated text.", explanation.Text)
}

func TestIsLLMAvailable_NilClient(t *testing.T) {
	gen := NewExplanationGenerator(nil, nil)

	assert.False(t, gen.IsLLMAvailable())
}

func TestWaitForModel_ReturnsWhenReady(t *testing.T) {
	server := ollamaServer(t, "llama3.2:latest")
	gen := NewExplanationGenerator(NewOllamaClient(testConfig(server.URL)), nil)

	err := gen.WaitForModel(context.Background(), 10*time.Millisecond)

	assert.NoError(t, err)
}

func TestWaitForModel_NilClient(t *testing.T) {
	gen := NewExplanationGenerator(nil, nil)

	err := gen.WaitForModel(context.Background(), 10*time.Millisecond)

	assert.Error(t, err)
}

func TestWaitForModel_ContextExpires(t *testing.T) {
	server := ollamaServer(t, "mistral:latest")
	gen := NewExplanationGenerator(NewOllamaClient(testConfig(server.URL)), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := gen.WaitForModel(ctx, 10*time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
