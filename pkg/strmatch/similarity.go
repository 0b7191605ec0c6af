// Package strmatch provides column-name normalization and the string
// similarity capability used by relationship matching. Any implementation
// returning 1.0 for identical strings and near 0 for disjoint ones is
// substitutable.
package strmatch

import (
	"regexp"
	"strings"
)

// Similarity scores how alike two strings are, in [0, 1].
type Similarity interface {
	Ratio(a, b string) float64
}

var (
	separatorRe = regexp.MustCompile(`[_\s-]+`)
	keySuffixRe = regexp.MustCompile(`(_id|_number|_no|_code)$`)
)

// Normalize lowercases a column name and collapses separator runs
// (whitespace, hyphens, underscores) into single underscores.
func Normalize(name string) string {
	return separatorRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// StripKeySuffix removes a trailing identifier suffix (_id, _number, _no,
// _code) from an already-normalized column name, exposing the entity base
// for comparison.
func StripKeySuffix(name string) string {
	return keySuffixRe.ReplaceAllString(name, "")
}

// Levenshtein is the default Similarity: a normalized edit-distance ratio.
type Levenshtein struct{}

// NewLevenshtein creates the default similarity implementation.
func NewLevenshtein() Similarity {
	return Levenshtein{}
}

// Ratio returns 1 - editDistance/maxLen. Identical strings score 1.0,
// fully disjoint strings approach 0. Two empty strings score 1.0.
func (Levenshtein) Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(distance(ra, rb))/float64(longest)
}

// distance computes the Levenshtein edit distance with a rolling row.
func distance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
