// ABOUTME: Tests for catalog entity behavior
// ABOUTME: Verifies deterministic embedding text, content hashes and lookups
package models

import (
	"strings"
	"testing"
)

func sampleCocktail() Cocktail {
	return Cocktail{
		ID:           "11007",
		Name:         "Margarita",
		Category:     "Ordinary Drink",
		Tags:         []string{"IBA", "ContemporaryClassic"},
		Instructions: "Shake with ice, strain into a salt-rimmed glass.",
		Ingredients: []CocktailIngredient{
			{Name: "Tequila", Quantity: "1 1/2", Unit: "oz"},
			{Name: "Triple sec", Quantity: "1/2", Unit: "oz"},
			{Name: "Lime juice", Quantity: "1", Unit: "oz"},
		},
	}
}

func TestEmbeddingText_Deterministic(t *testing.T) {
	c := sampleCocktail()

	first := c.EmbeddingText()
	second := c.EmbeddingText()

	if first != second {
		t.Error("EmbeddingText() not deterministic for the same entity")
	}

	for _, want := range []string{"Margarita", "Tequila", "Triple sec", "salt-rimmed"} {
		if !strings.Contains(first, want) {
			t.Errorf("EmbeddingText() missing %q:\n%s", want, first)
		}
	}
}

func TestEmbeddingText_OrderedIngredients(t *testing.T) {
	c := sampleCocktail()
	text := c.EmbeddingText()

	// Ingredient order must follow the recipe, not be re-sorted
	tequila := strings.Index(text, "Tequila")
	lime := strings.Index(text, "Lime juice")
	if tequila < 0 || lime < 0 || tequila > lime {
		t.Errorf("ingredient order not preserved in:\n%s", text)
	}
}

func TestContentHash_ChangesWithContent(t *testing.T) {
	a := sampleCocktail()
	b := sampleCocktail()

	if a.ContentHash() != b.ContentHash() {
		t.Error("identical cocktails must have identical content hashes")
	}

	b.Instructions = "Blend with ice instead."
	if a.ContentHash() == b.ContentHash() {
		t.Error("changed instructions must change the content hash")
	}
}

func TestHasIngredient(t *testing.T) {
	c := sampleCocktail()

	if !c.HasIngredient("tequila") {
		t.Error("HasIngredient should be case-insensitive")
	}
	if !c.HasIngredient("  Triple Sec ") {
		t.Error("HasIngredient should trim whitespace")
	}
	if c.HasIngredient("vodka") {
		t.Error("HasIngredient matched an absent ingredient")
	}
}

func TestIngredientNames(t *testing.T) {
	c := sampleCocktail()
	names := c.IngredientNames()

	want := []string{"Tequila", "Triple sec", "Lime juice"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNormalizedName(t *testing.T) {
	ing := Ingredient{Name: "  Lime Juice "}
	if got := ing.NormalizedName(); got != "lime juice" {
		t.Errorf("NormalizedName() = %q, want %q", got, "lime juice")
	}
}
