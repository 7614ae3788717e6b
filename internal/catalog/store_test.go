// ABOUTME: Tests for catalog loading, validation and lookups
// ABOUTME: Covers round trips, bad-record skipping and atomic reload
package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validDataset = `[
  {
    "id": 1,
    "name": "Margarita",
    "category": "Ordinary Drink",
    "tags": ["IBA"],
    "instructions": "Shake and strain.",
    "ingredients": [
      {"id": 10, "name": "Tequila", "alcoholic": true, "type": "spirit", "quantity": "1 1/2", "unit": "oz"},
      {"id": 11, "name": "Lime juice", "quantity": "1", "unit": "oz"},
      {"id": 12, "name": "Triple sec", "alcoholic": true, "quantity": "1/2", "unit": "oz"}
    ]
  },
  {
    "id": 2,
    "name": "Mojito",
    "instructions": "Muddle mint, add rum and soda.",
    "ingredients": [
      {"id": 20, "name": "White rum", "alcoholic": true},
      {"id": 21, "name": "Mint"},
      {"id": 11, "name": "Lime juice"}
    ]
  }
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cocktails.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoad_RoundTrip(t *testing.T) {
	store := NewStore()
	summary, err := store.Load(writeDataset(t, validDataset))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if summary.Loaded != 2 || summary.Skipped != 0 {
		t.Errorf("summary = %+v, want 2 loaded, 0 skipped", summary)
	}

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d cocktails, want 2", len(all))
	}

	// Stable ascending-id order
	if all[0].ID != "1" || all[1].ID != "2" {
		t.Errorf("All() order = [%s, %s], want [1, 2]", all[0].ID, all[1].ID)
	}

	c, err := store.GetByID("1")
	if err != nil {
		t.Fatalf("GetByID(1) failed: %v", err)
	}
	if c.Name != "Margarita" {
		t.Errorf("Name = %s, want Margarita", c.Name)
	}
	if len(c.Ingredients) != 3 {
		t.Errorf("got %d ingredients, want 3", len(c.Ingredients))
	}
	if c.Ingredients[0].Quantity != "1 1/2" || c.Ingredients[0].Unit != "oz" {
		t.Errorf("ingredient quantity/unit not preserved: %+v", c.Ingredients[0])
	}
}

func TestLoad_SkipsBadRecords(t *testing.T) {
	dataset := `[
	  {"id": 1, "name": "Margarita", "instructions": "Shake.", "ingredients": [{"id": 10, "name": "Tequila"}]},
	  {"name": "No ID", "instructions": "x"},
	  {"id": 3, "instructions": "missing name"},
	  {"id": 4, "name": "Bad Ingredient", "ingredients": [{"id": 40}]},
	  {"id": 1, "name": "Duplicate", "instructions": "same id as Margarita"}
	]`

	store := NewStore()
	summary, err := store.Load(writeDataset(t, dataset))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if summary.Loaded != 1 {
		t.Errorf("Loaded = %d, want 1", summary.Loaded)
	}
	if summary.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", summary.Skipped)
	}
	if len(summary.Errors) != 4 {
		t.Fatalf("got %d errors, want 4", len(summary.Errors))
	}
	for _, e := range summary.Errors {
		if !errors.Is(e, ErrDataFormat) {
			t.Errorf("error %v does not wrap ErrDataFormat", e)
		}
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestLoad_WholeFileFailures(t *testing.T) {
	store := NewStore()

	if _, err := store.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
	if _, err := store.Load(writeDataset(t, `{"not": "an array"}`)); err == nil {
		t.Error("Load() of a non-array document should fail")
	}
	if _, err := store.Load(writeDataset(t, `not json at all`)); err == nil {
		t.Error("Load() of invalid JSON should fail")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(writeDataset(t, validDataset)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	_, err := store.GetByID("999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(999) error = %v, want ErrNotFound", err)
	}
}

func TestIngredients_UniqueAndSorted(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(writeDataset(t, validDataset)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	ingredients := store.Ingredients()
	// Lime juice appears in both cocktails but must be listed once
	seen := map[string]int{}
	for _, ing := range ingredients {
		seen[ing.NormalizedName()]++
	}
	if seen["lime juice"] != 1 {
		t.Errorf("lime juice listed %d times, want 1", seen["lime juice"])
	}

	for i := 1; i < len(ingredients); i++ {
		if ingredients[i-1].NormalizedName() > ingredients[i].NormalizedName() {
			t.Errorf("ingredients not sorted at %d: %q > %q", i, ingredients[i-1].Name, ingredients[i].Name)
		}
	}
}

func TestFindByIngredients(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(writeDataset(t, validDataset)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	both := store.FindByIngredients([]string{"lime juice"})
	if len(both) != 2 {
		t.Errorf("lime juice should match 2 cocktails, got %d", len(both))
	}

	one := store.FindByIngredients([]string{"tequila", "lime juice"})
	if len(one) != 1 || one[0].Name != "Margarita" {
		t.Errorf("tequila+lime should match only Margarita, got %v", one)
	}

	none := store.FindByIngredients([]string{"absinthe"})
	if len(none) != 0 {
		t.Errorf("absinthe should match nothing, got %d", len(none))
	}
}

func TestReload_ReplacesAtomically(t *testing.T) {
	store := NewStore()
	if _, err := store.Load(writeDataset(t, validDataset)); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	replacement := `[
	  {"id": 9, "name": "Negroni", "instructions": "Stir over ice.", "ingredients": [{"id": 90, "name": "Gin"}]}
	]`
	if _, err := store.Load(writeDataset(t, replacement)); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d after reload, want 1", store.Len())
	}
	if _, err := store.GetByID("1"); !errors.Is(err, ErrNotFound) {
		t.Error("old catalog entry still visible after reload")
	}
	if _, err := store.GetByID("9"); err != nil {
		t.Errorf("new catalog entry missing after reload: %v", err)
	}
}
