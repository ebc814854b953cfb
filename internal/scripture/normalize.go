package scripture

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a string for comparison:
// 1. Lowercase
// 2. Decompose (NFD) and drop combining marks ("Josué" -> "josue", "ñ" -> "n")
// 3. Trim leading/trailing whitespace
//
// Book names, query text and topic keys must all go through Normalize
// before being compared. Lowercasing happens first because some uppercase
// runes lowercase into a base letter plus a combining mark.
func Normalize(s string) string {
	return strings.TrimSpace(StripDiacritics(strings.ToLower(s)))
}

// StripDiacritics removes combining marks but preserves case.
func StripDiacritics(s string) string {
	// transform.Chain is stateful, so build one per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return result
}

// squash removes all whitespace from s.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// CompactKey normalizes s and removes all whitespace ("1 Reyes" -> "1reyes").
func CompactKey(s string) string {
	return squash(Normalize(s))
}
