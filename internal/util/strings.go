// Package util provides common utility functions used across the codebase.
package util

import (
	"sort"
	"strings"
)

// JoinOrDefault joins strings with ", " or returns the default value for empty slices.
// Useful for displaying lists of monitor IDs, feature names, or groups where an
// empty list should show a placeholder rather than nothing.
func JoinOrDefault(items []string, def string) string {
	if len(items) == 0 {
		return def
	}
	return strings.Join(items, ", ")
}

// Pluralize returns singular if count is 1, otherwise plural.
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return singular
	}
	return plural
}

// LevenshteinDistance returns the minimum number of single-character edits
// (insertions, deletions, substitutions) needed to turn a into b.
func LevenshteinDistance(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// SuggestSimilar returns the candidates within fewer than maxDistance edits
// of input, closest first, preserving candidate order on ties. Matching is
// case-insensitive. Returns nil when nothing is close enough.
func SuggestSimilar(input string, candidates []string, maxDistance int) []string {
	if input == "" {
		return nil
	}
	in := strings.ToLower(input)

	type scored struct {
		name string
		dist int
	}
	var matches []scored
	for _, cand := range candidates {
		d := LevenshteinDistance(in, strings.ToLower(cand))
		if d < maxDistance {
			matches = append(matches, scored{name: cand, dist: d})
		}
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].dist < matches[j].dist })

	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.name
	}
	return result
}
