package scripture

import (
	"regexp"
	"strings"
)

// PathVariation is one guess at how a content source names a book's folder
// and file. Variations are derived on demand and never persisted.
type PathVariation struct {
	Folder string `json:"folder"`
	File   string `json:"file"`
}

// numberedBook matches "1 Reyes", "2 Corintios", ...
var numberedBook = regexp.MustCompile(`^(\d+)\s+(.+)$`)

// PathVariations lists the naming conventions to try for book, most likely
// first. Diacritics are removed but case is kept for folders.
//
// For "1 Reyes":   {1Reyes 1_reyes} {1_Reyes 1_reyes} {1reyes 1_reyes}
// For "Juan":      {Juan juan} {juan juan}
//
// Duplicates are dropped so the fetch cascade never requests the same
// location twice.
func PathVariations(book string) []PathVariation {
	name := strings.Join(strings.Fields(StripDiacritics(book)), " ")

	var out []PathVariation
	seen := make(map[PathVariation]bool)
	add := func(v PathVariation) {
		if v.Folder == "" || seen[v] {
			return
		}
		seen[v] = true
		out = append(out, v)
	}

	if m := numberedBook.FindStringSubmatch(name); m != nil {
		num, rest := m[1], m[2]
		file := num + "_" + strings.ToLower(strings.ReplaceAll(rest, " ", "_"))
		add(PathVariation{Folder: num + strings.ReplaceAll(rest, " ", ""), File: file})
		add(PathVariation{Folder: num + "_" + strings.ReplaceAll(rest, " ", ""), File: file})
	}

	simple := strings.ReplaceAll(name, " ", "_")
	add(PathVariation{Folder: simple, File: strings.ToLower(simple)})
	add(PathVariation{
		Folder: strings.ToLower(strings.ReplaceAll(name, " ", "")),
		File:   strings.ToLower(simple),
	})

	if len(out) == 0 {
		// Keep the "at least one variation" contract even for blank input.
		out = append(out, PathVariation{})
	}
	return out
}
