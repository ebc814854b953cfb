package scripture

import (
	"strconv"
	"strings"
	"unicode"
)

// FindDirectReference detects a "<book> <chapter>[:<verse>]" query.
//
// Books are tried in list order and the first one whose normalized name
// prefixes the normalized query decides the outcome: the first token of the
// remainder (split on ':' and whitespace) must start with digits, which become
// the chapter. A query that is only a book name has no chapter and yields
// false. Callers that need a different tie-break must reorder books.
func FindDirectReference(query string, books []string) (Reference, bool) {
	q := Normalize(query)
	if q == "" {
		return Reference{}, false
	}

	for _, book := range books {
		nb := Normalize(book)
		if nb == "" || !strings.HasPrefix(q, nb) {
			continue
		}

		tokens := strings.FieldsFunc(q[len(nb):], func(r rune) bool {
			return r == ':' || unicode.IsSpace(r)
		})
		if len(tokens) == 0 {
			return Reference{}, false
		}

		chapter, ok := leadingInt(tokens[0])
		if !ok || chapter < 1 {
			return Reference{}, false
		}

		ref := Reference{Book: book, Chapter: chapter}
		if len(tokens) > 1 {
			if verse, ok := leadingInt(tokens[1]); ok && verse > 0 {
				ref.Verse = verse
			}
		}
		return ref, true
	}

	return Reference{}, false
}

// leadingInt parses the run of ASCII digits at the start of s ("16a" -> 16).
func leadingInt(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
