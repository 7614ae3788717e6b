// ABOUTME: Core catalog entities for the cocktail recommendation system
// ABOUTME: Defines Cocktail and Ingredient with deterministic embedding text
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Ingredient is a catalog ingredient referenced by cocktails.
// Identity is the normalized (lowercased, trimmed) name.
type Ingredient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Alcoholic   bool   `json:"alcoholic"`
	Type        string `json:"type,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// NormalizedName returns the case-insensitive identity of the ingredient.
func (i Ingredient) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(i.Name))
}

// CocktailIngredient is one line of a cocktail recipe: an ingredient
// reference plus quantity and unit as written in the dataset.
type CocktailIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// Cocktail is a single catalog entry. Immutable once loaded.
type Cocktail struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Category     string               `json:"category,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
	Instructions string               `json:"instructions"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	Ingredients  []CocktailIngredient `json:"ingredients"`
}

// IngredientNames returns the ordered ingredient names of the recipe.
func (c Cocktail) IngredientNames() []string {
	names := make([]string, len(c.Ingredients))
	for i, ing := range c.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// HasIngredient reports whether the recipe uses the given ingredient
// (case-insensitive).
func (c Cocktail) HasIngredient(name string) bool {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, ing := range c.Ingredients {
		if strings.ToLower(strings.TrimSpace(ing.Name)) == want {
			return true
		}
	}
	return false
}

// EmbeddingText returns the canonical text representation used as embedding
// input. It must be deterministic for a given cocktail so that re-embedding
// is idempotent: same entity, same text, same vector.
func (c Cocktail) EmbeddingText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Cocktail: %s\n", c.Name)
	if c.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", c.Category)
	}
	if len(c.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(c.Tags, ", "))
	}
	b.WriteString("Ingredients: ")
	for i, ing := range c.Ingredients {
		if i > 0 {
			b.WriteString(", ")
		}
		if ing.Quantity != "" {
			b.WriteString(ing.Quantity)
			if ing.Unit != "" {
				b.WriteString(" " + ing.Unit)
			}
			b.WriteString(" ")
		}
		b.WriteString(ing.Name)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Instructions: %s", c.Instructions)
	return b.String()
}

// ContentHash returns a stable hash of the embedding text. The synchronizer
// stores it in index metadata and skips re-embedding entries whose hash is
// unchanged.
func (c Cocktail) ContentHash() string {
	sum := sha256.Sum256([]byte(c.EmbeddingText()))
	return hex.EncodeToString(sum[:])
}
