// ABOUTME: Catalog store for cocktails and ingredients loaded from the dataset
// ABOUTME: Validates records at load time and serves immutable snapshots
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/barback/cocktail-rag/internal/models"
)

// ErrNotFound is returned when a cocktail id is not in the catalog
var ErrNotFound = errors.New("cocktail not found")

// ErrDataFormat wraps per-record validation failures
var ErrDataFormat = errors.New("malformed catalog record")

// record mirrors the dataset file layout
type record struct {
	ID           json.Number        `json:"id"`
	Name         string             `json:"name"`
	Category     string             `json:"category"`
	Tags         []string           `json:"tags"`
	Instructions string             `json:"instructions"`
	ImageURL     string             `json:"imageUrl"`
	Ingredients  []ingredientRecord `json:"ingredients"`
}

type ingredientRecord struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Alcoholic   bool        `json:"alcoholic"`
	Type        string      `json:"type"`
	ImageURL    string      `json:"imageUrl"`
	Quantity    string      `json:"quantity"`
	Unit        string      `json:"unit"`
}

// LoadSummary reports the outcome of a catalog load. Bad records are
// skipped, not fatal; their errors are collected here.
type LoadSummary struct {
	Loaded  int
	Skipped int
	Errors  []error
}

// snapshot is one immutable catalog version
type snapshot struct {
	byID        map[string]models.Cocktail
	ordered     []models.Cocktail // sorted by id
	ingredients []models.Ingredient
}

// Store holds the current catalog version. Reload swaps the whole
// snapshot atomically so readers never observe a partial replacement.
type Store struct {
	mu   sync.RWMutex
	snap *snapshot
}

// NewStore returns an empty catalog store
func NewStore() *Store {
	return &Store{snap: &snapshot{byID: map[string]models.Cocktail{}}}
}

// Load reads the dataset file at path and replaces the catalog contents.
// A whole-file failure (missing file, invalid JSON, non-array root) is an
// error; individual malformed records are skipped and reported in the
// summary.
func (s *Store) Load(path string) (*LoadSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("dataset %s is not a JSON array of cocktails: %w", path, err)
	}

	summary := &LoadSummary{}
	next := &snapshot{byID: make(map[string]models.Cocktail, len(records))}
	ingredientSet := make(map[string]models.Ingredient)

	for i, rec := range records {
		cocktail, err := validateRecord(rec)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if _, dup := next.byID[cocktail.ID]; dup {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Errorf("record %d: %w: duplicate id %q", i, ErrDataFormat, cocktail.ID))
			continue
		}

		next.byID[cocktail.ID] = cocktail
		for _, ir := range rec.Ingredients {
			ing := models.Ingredient{
				ID:          ir.ID.String(),
				Name:        ir.Name,
				Description: ir.Description,
				Alcoholic:   ir.Alcoholic,
				Type:        ir.Type,
				ImageURL:    ir.ImageURL,
			}
			ingredientSet[ing.NormalizedName()] = ing
		}
		summary.Loaded++
	}

	// Stable ordering by id for reproducible indexing
	next.ordered = make([]models.Cocktail, 0, len(next.byID))
	for _, c := range next.byID {
		next.ordered = append(next.ordered, c)
	}
	sort.Slice(next.ordered, func(i, j int) bool {
		return next.ordered[i].ID < next.ordered[j].ID
	})

	next.ingredients = make([]models.Ingredient, 0, len(ingredientSet))
	for _, ing := range ingredientSet {
		next.ingredients = append(next.ingredients, ing)
	}
	sort.Slice(next.ingredients, func(i, j int) bool {
		return next.ingredients[i].NormalizedName() < next.ingredients[j].NormalizedName()
	})

	s.mu.Lock()
	s.snap = next
	s.mu.Unlock()

	return summary, nil
}

func validateRecord(rec record) (models.Cocktail, error) {
	if rec.ID.String() == "" {
		return models.Cocktail{}, fmt.Errorf("%w: missing id", ErrDataFormat)
	}
	if strings.TrimSpace(rec.Name) == "" {
		return models.Cocktail{}, fmt.Errorf("%w: missing name (id %q)", ErrDataFormat, rec.ID)
	}

	ingredients := make([]models.CocktailIngredient, 0, len(rec.Ingredients))
	for j, ir := range rec.Ingredients {
		if strings.TrimSpace(ir.Name) == "" {
			return models.Cocktail{}, fmt.Errorf("%w: ingredient %d of %q has no name", ErrDataFormat, j, rec.ID)
		}
		ingredients = append(ingredients, models.CocktailIngredient{
			Name:     ir.Name,
			Quantity: ir.Quantity,
			Unit:     ir.Unit,
		})
	}

	return models.Cocktail{
		ID:           rec.ID.String(),
		Name:         rec.Name,
		Category:     rec.Category,
		Tags:         rec.Tags,
		Instructions: rec.Instructions,
		ImageURL:     rec.ImageURL,
		Ingredients:  ingredients,
	}, nil
}

// GetByID returns the cocktail with the given id, or ErrNotFound
func (s *Store) GetByID(id string) (models.Cocktail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.snap.byID[id]
	if !ok {
		return models.Cocktail{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// All returns every cocktail in stable ascending-id order
func (s *Store) All() []models.Cocktail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Cocktail, len(s.snap.ordered))
	copy(out, s.snap.ordered)
	return out
}

// Ingredients returns the unique ingredients across the catalog, ordered
// by normalized name
func (s *Store) Ingredients() []models.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Ingredient, len(s.snap.ingredients))
	copy(out, s.snap.ingredients)
	return out
}

// FindByIngredients returns cocktails using all of the given ingredient
// names (case-insensitive), in stable id order.
func (s *Store) FindByIngredients(names []string) []models.Cocktail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Cocktail
	for _, c := range s.snap.ordered {
		all := true
		for _, name := range names {
			if !c.HasIngredient(name) {
				all = false
				break
			}
		}
		if all && len(names) > 0 {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of cocktails in the current catalog version
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snap.ordered)
}
