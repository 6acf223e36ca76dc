// Package fuzzy finds approximate string matches using the Ratcliff/Obershelp
// sequence-matching ratio (2*M/T, where M is the number of matched runes and T
// the total rune count of both strings).
package fuzzy

import (
	"cmp"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultCutoff is the minimum ratio a candidate needs to count as close.
const DefaultCutoff = 0.6

// DefaultLimit is the number of best matches CloseMatches keeps by default.
const DefaultLimit = 3

// match pairs a candidate with its similarity score.
type match struct {
	score     float64
	candidate string
}

// CloseMatches returns the candidates whose similarity to word is at least
// cutoff, best first. Ties are ordered by candidate, descending. At most n
// matches are returned; n <= 0 means no limit. A cutoff outside [0, 1]
// returns nil.
func CloseMatches(word string, candidates []string, n int, cutoff float64) []string {
	if cutoff < 0 || cutoff > 1 {
		return nil
	}

	// The word is the second sequence so its lookup table is built once.
	m := difflib.NewMatcher(nil, runes(word))

	var matches []match
	for _, c := range candidates {
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if score := m.Ratio(); score >= cutoff {
			matches = append(matches, match{score: score, candidate: c})
		}
	}

	slices.SortStableFunc(matches, func(a, b match) int {
		if c := cmp.Compare(b.score, a.score); c != 0 {
			return c
		}
		return cmp.Compare(b.candidate, a.candidate)
	})

	if n > 0 && len(matches) > n {
		matches = matches[:n]
	}

	result := make([]string, len(matches))
	for i, mt := range matches {
		result[i] = mt.candidate
	}
	return result
}

// Ratio returns the similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

// runes splits s into one-rune strings, the element type difflib compares.
func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
