package matching

import (
	"math"
	"strings"
)

// NameSimilarity scores how alike two names are on a 0..100 scale.
//
// Both names are lowercased and trimmed. Identical names score 100, which
// includes two empty names. Otherwise the score is the Levenshtein distance
// turned into a percentage of the longer name's length.
func NameSimilarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 100
	}

	ra, rb := []rune(a), []rune(b)
	maxLen := max(len(ra), len(rb))
	distance := levenshtein(ra, rb)

	return int(math.Round(float64(maxLen-distance) / float64(maxLen) * 100))
}

// Levenshtein returns the edit distance between two strings, counted in runes,
// with unit cost for insertion, deletion and substitution.
func Levenshtein(a, b string) int {
	return levenshtein([]rune(a), []rune(b))
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Full (len(a)+1) x (len(b)+1) table; names are short.
	table := make([][]int, len(a)+1)
	for i := range table {
		table[i] = make([]int, len(b)+1)
		table[i][0] = i
	}
	for j := range table[0] {
		table[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			table[i][j] = min(
				table[i-1][j]+1,      // deletion
				table[i][j-1]+1,      // insertion
				table[i-1][j-1]+cost, // substitution
			)
		}
	}

	return table[len(a)][len(b)]
}
