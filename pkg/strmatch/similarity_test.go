package strmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase passthrough", "customer_id", "customer_id"},
		{"uppercase", "Customer_ID", "customer_id"},
		{"spaces collapse", "Customer  ID", "customer_id"},
		{"hyphens collapse", "customer-id", "customer_id"},
		{"mixed separator run", "customer -_ id", "customer_id"},
		{"surrounding whitespace", "  account_number ", "account_number"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestStripKeySuffix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"id suffix", "customer_id", "customer"},
		{"number suffix", "account_number", "account"},
		{"no suffix", "account_no", "account"},
		{"code suffix", "branch_code", "branch"},
		{"no recognized suffix", "balance", "balance"},
		{"suffix only strips once", "card_number_id", "card_number"},
		{"mid-name token untouched", "id_card", "id_card"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StripKeySuffix(tt.input))
		})
	}
}

func TestLevenshteinRatio(t *testing.T) {
	sim := NewLevenshtein()

	tests := []struct {
		name     string
		a, b     string
		expected float64
	}{
		{"identical", "customer", "customer", 1.0},
		{"both empty", "", "", 1.0},
		{"one empty", "customer", "", 0.0},
		{"single substitution", "acount", "account", 1.0 - 1.0/7.0},
		{"disjoint", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, sim.Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestLevenshteinRatioSymmetric(t *testing.T) {
	sim := NewLevenshtein()
	assert.Equal(t, sim.Ratio("customer", "cust"), sim.Ratio("cust", "customer"))
}

func TestLevenshteinRatioNearMatch(t *testing.T) {
	sim := NewLevenshtein()
	// Typo-distance names should clear a 0.85 equivalence floor.
	assert.Greater(t, sim.Ratio("customer_id", "customer_1d"), 0.85)
	assert.Less(t, sim.Ratio("customer", "transaction"), 0.5)
}
