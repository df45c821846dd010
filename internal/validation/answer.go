package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxDistanceRatio is the share of the longer answer that may differ for two
// answers to still match
const maxDistanceRatio = 0.2

// NormalizeAnswer normalizes an answer for comparison
func NormalizeAnswer(answer string) string {
	answer = strings.ToLower(strings.TrimSpace(answer))

	for _, prefix := range []string{"the ", "a ", "an "} {
		answer = strings.TrimPrefix(answer, prefix)
	}

	var result strings.Builder
	for _, r := range answer {
		if !unicode.IsPunct(r) {
			result.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(result.String()), " ")
}

// IsSimilarAnswer checks if a given answer is close enough to the expected one
func IsSimilarAnswer(given, expected string) bool {
	g := NormalizeAnswer(given)
	e := NormalizeAnswer(expected)

	if g == "" || e == "" {
		return g == e
	}
	if g == e {
		return true
	}

	gLen, eLen := utf8.RuneCountInString(g), utf8.RuneCountInString(e)
	shortest, longest := min(gLen, eLen), max(gLen, eLen)

	// a contained answer only counts when it covers at least half of the other
	if shortest*2 >= longest && (strings.Contains(g, e) || strings.Contains(e, g)) {
		return true
	}

	distance := levenshtein.ComputeDistance(g, e)

	return float64(distance)/float64(longest) < maxDistanceRatio
}
