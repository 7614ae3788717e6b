// ABOUTME: Tests for prompt assembly and raw-result formatting
// ABOUTME: Verifies determinism and rank ordering of grounding context
package rag

import (
	"strings"
	"testing"

	"github.com/barback/cocktail-rag/internal/models"
)

func promptMatches() models.RetrievalResult {
	return models.RetrievalResult{
		{
			CocktailID: "1",
			Score:      0.91,
			Metadata: models.Metadata{
				Name:            "Margarita",
				Tags:            []string{"IBA"},
				Instructions:    "Shake with ice.",
				IngredientNames: []string{"Tequila", "Lime juice"},
			},
		},
		{
			CocktailID: "2",
			Score:      0.64,
			Metadata: models.Metadata{
				Name:            "Paloma",
				IngredientNames: []string{"Tequila", "Grapefruit soda"},
			},
		},
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	query := "a refreshing tequila cocktail"
	matches := promptMatches()

	first := BuildPrompt(query, matches)
	second := BuildPrompt(query, matches)
	if first != second {
		t.Error("BuildPrompt not deterministic for identical inputs")
	}
}

func TestBuildPrompt_Content(t *testing.T) {
	prompt := BuildPrompt("a refreshing tequila cocktail", promptMatches())

	for _, want := range []string{"Margarita", "Paloma", "Tequila, Lime juice", "Shake with ice.", "Question: a refreshing tequila cocktail"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	// Rank order must be preserved
	if strings.Index(prompt, "Margarita") > strings.Index(prompt, "Paloma") {
		t.Error("matches not rendered in rank order")
	}
	if !strings.Contains(prompt, "1. Margarita") || !strings.Contains(prompt, "2. Paloma") {
		t.Errorf("matches not numbered by rank:\n%s", prompt)
	}
}

func TestFormatRawResult(t *testing.T) {
	text := FormatRawResult(promptMatches())

	if !strings.Contains(text, "1. Margarita (Tequila, Lime juice)") {
		t.Errorf("raw result missing first match:\n%s", text)
	}
	if !strings.Contains(text, "2. Paloma") {
		t.Errorf("raw result missing second match:\n%s", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Error("raw result should not end with a newline")
	}
}
