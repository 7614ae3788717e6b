// ABOUTME: Retrieval and recommendation types shared across gateways
// ABOUTME: Defines IndexEntry, Match, RetrievalResult and Recommendation
package models

import "time"

// Metadata is the snapshot of cocktail fields attached to each vector so
// results can be filtered and displayed without re-fetching the catalog.
type Metadata struct {
	Name            string   `json:"name"`
	Tags            []string `json:"tags,omitempty"`
	Instructions    string   `json:"instructions"`
	ImageURL        string   `json:"image_url,omitempty"`
	IngredientNames []string `json:"ingredient_names"`
	ContentHash     string   `json:"content_hash"`
}

// IndexEntry associates a cocktail id with its embedding vector and
// metadata snapshot. At most one entry per cocktail id exists in the index.
type IndexEntry struct {
	CocktailID string    `json:"cocktail_id"`
	Vector     []float64 `json:"vector"`
	Metadata   Metadata  `json:"metadata"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Match is one retrieval hit: cocktail id, cosine similarity and metadata.
type Match struct {
	CocktailID string   `json:"id"`
	Score      float64  `json:"score"`
	Metadata   Metadata `json:"metadata"`
}

// RetrievalResult is an ordered sequence of matches, ranked descending by
// score with ties broken by ascending cocktail id.
type RetrievalResult []Match

// IDs returns the cocktail ids of the result in rank order.
func (r RetrievalResult) IDs() []string {
	ids := make([]string, len(r))
	for i, m := range r {
		ids[i] = m.CocktailID
	}
	return ids
}

// Recommendation is the final answer returned to the tool boundary: the
// original query, the grounding matches, and the generated text.
type Recommendation struct {
	RequestID string          `json:"request_id"`
	Query     string          `json:"query"`
	Grounding RetrievalResult `json:"grounding"`
	Answer    string          `json:"answer"`
	// Generated is false on the degraded paths: no close match, or the
	// generation gateway failed and the raw retrieval was returned instead.
	Generated bool `json:"generated"`
}
