// ABOUTME: Deterministic prompt assembly for the generation stage
// ABOUTME: Same query and retrieval result always yield the same prompt text
package rag

import (
	"fmt"
	"strings"

	"github.com/barback/cocktail-rag/internal/models"
)

// BuildPrompt embeds the ranked cocktails' structured details as grounding
// context alongside the original query. Matches are rendered in rank order
// so the assembly is deterministic.
func BuildPrompt(query string, matches models.RetrievalResult) string {
	var b strings.Builder

	b.WriteString("Context cocktails:\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s (similarity %.3f)\n", i+1, m.Metadata.Name, m.Score)
		if len(m.Metadata.IngredientNames) > 0 {
			fmt.Fprintf(&b, "   Ingredients: %s\n", strings.Join(m.Metadata.IngredientNames, ", "))
		}
		if len(m.Metadata.Tags) > 0 {
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(m.Metadata.Tags, ", "))
		}
		if m.Metadata.Instructions != "" {
			fmt.Fprintf(&b, "   Instructions: %s\n", m.Metadata.Instructions)
		}
	}

	b.WriteString("\nQuestion: ")
	b.WriteString(query)
	return b.String()
}

// FormatRawResult renders the retrieval result as a plain-text answer.
// Used as the fallback when the generation gateway is unavailable:
// ungenerated but still useful.
func FormatRawResult(matches models.RetrievalResult) string {
	var b strings.Builder
	b.WriteString("Closest matches from the catalog:\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "%d. %s", i+1, m.Metadata.Name)
		if len(m.Metadata.IngredientNames) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(m.Metadata.IngredientNames, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
