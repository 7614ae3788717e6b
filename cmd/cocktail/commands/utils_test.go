// ABOUTME: Tests for shared CLI helper functions
// ABOUTME: Covers string truncation and numeric validation
package commands

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"shorter than max", "margarita", 20, "margarita"},
		{"exactly max", "mojito", 6, "mojito"},
		{"needs truncation", "a very long cocktail name", 10, "a very ..."},
		{"tiny max", "cocktail", 3, "coc"},
		{"unicode safe", "piña colada deluxe edition", 15, "piña colada ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestValidatePositiveInt(t *testing.T) {
	if err := validatePositiveInt(5, "top-k"); err != nil {
		t.Errorf("validatePositiveInt(5) = %v, want nil", err)
	}
	if err := validatePositiveInt(0, "top-k"); err == nil {
		t.Error("validatePositiveInt(0) = nil, want error")
	}
	if err := validatePositiveInt(-1, "top-k"); err == nil {
		t.Error("validatePositiveInt(-1) = nil, want error")
	}
}
