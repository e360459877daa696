package identity

import "strings"

// similarityThreshold is the minimum Levenshtein similarity for two
// normalized names to count as a match when neither exact equality nor
// containment applies.
const similarityThreshold = 0.8

// MatchNames reports whether a claimed full name matches the name on the
// provider record. Matching is deterministic:
//
//  1. Normalize both names (lowercase, trim, strip non [a-z\s]).
//  2. Exact equality matches.
//  3. Containment in either direction matches (handles middle names).
//  4. Otherwise Levenshtein similarity must exceed 0.8.
func MatchNames(claimed, recorded string) bool {
	a := normalizeName(claimed)
	b := normalizeName(recorded)

	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if containsName(a, b) || containsName(b, a) {
		return true
	}
	return similarity(a, b) > similarityThreshold
}

// containsName reports whether every word of inner appears in outer. This is
// what lets "John Middle Doe" match a record holding just "John Doe", and
// the reverse.
func containsName(outer, inner string) bool {
	if strings.Contains(outer, inner) {
		return true
	}
	outerWords := make(map[string]bool)
	for _, w := range strings.Fields(outer) {
		outerWords[w] = true
	}
	for _, w := range strings.Fields(inner) {
		if !outerWords[w] {
			return false
		}
	}
	return true
}

// normalizeName lowercases, trims, collapses runs of whitespace, and strips
// every character outside [a-z\s].
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var sb strings.Builder
	sb.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '\n':
			if !lastSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}

// similarity maps edit distance onto [0,1]: identical strings score 1,
// completely different strings score 0.
func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return float64(longest-levenshtein(a, b)) / float64(longest)
}

// levenshtein computes the classic edit distance with unit-cost insert,
// delete, and substitute, using a (|a|+1)x(|b|+1) dynamic-programming table
// collapsed to two rows.
func levenshtein(a, b string) int {
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
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // delete
				curr[j-1]+1,    // insert
				prev[j-1]+cost, // substitute
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
