package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Franko", "Franko", 1},
		{"disjoint", "abc", "xyz", 0},
		{"both empty", "", "", 1},
		{"prefix", "Ukrain", "Ukrainka", 12.0 / 14.0},
		{"abcd vs bcde", "abcd", "bcde", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCloseMatchesCutoff(t *testing.T) {
	got := CloseMatches("Ukrain", []string{"Ukrainka", "Franko"}, DefaultLimit, DefaultCutoff)

	assert.Equal(t, []string{"Ukrainka"}, got)
}

func TestCloseMatchesOrdersBestFirst(t *testing.T) {
	got := CloseMatches("appel", []string{"ape", "apple", "peach", "puppy"}, DefaultLimit, DefaultCutoff)

	assert.Equal(t, []string{"apple", "ape"}, got)
}

func TestCloseMatchesLimit(t *testing.T) {
	candidates := []string{"Shevchenko", "Shevchenka", "Shevchuk", "Shevchenk", "Franko"}

	got := CloseMatches("Shevchenko", candidates, 2, DefaultCutoff)
	assert.Len(t, got, 2)
	assert.Equal(t, "Shevchenko", got[0])

	all := CloseMatches("Shevchenko", candidates, 0, DefaultCutoff)
	assert.Len(t, all, 4)
	assert.NotContains(t, all, "Franko")
}

func TestCloseMatchesTiesDescending(t *testing.T) {
	got := CloseMatches("ab", []string{"ax", "ay"}, 0, 0.5)

	assert.Equal(t, []string{"ay", "ax"}, got)
}

func TestCloseMatchesInvalidCutoff(t *testing.T) {
	assert.Nil(t, CloseMatches("a", []string{"a"}, 0, 1.5))
	assert.Nil(t, CloseMatches("a", []string{"a"}, 0, -0.1))
}

func TestCloseMatchesUnicode(t *testing.T) {
	got := CloseMatches("Шевченк", []string{"Шевченко", "Франко"}, DefaultLimit, DefaultCutoff)

	assert.Equal(t, []string{"Шевченко"}, got)
}

func TestCloseMatchesNoCandidates(t *testing.T) {
	assert.Empty(t, CloseMatches("Franko", nil, DefaultLimit, DefaultCutoff))
}
