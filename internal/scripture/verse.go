package scripture

import "fmt"

// Verse is a single verse of a chapter.
// Title is only set on the verse that opens a named section.
type Verse struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
	Title   string `json:"title,omitempty"`
}

// ChapterKey identifies a chapter, the unit of caching and fetching.
type ChapterKey struct {
	Book    string
	Chapter int
}

// Equal reports whether two keys address the same chapter.
// Books are compared after Normalize; chapters must match exactly.
func (k ChapterKey) Equal(other ChapterKey) bool {
	return k.Chapter == other.Chapter && Normalize(k.Book) == Normalize(other.Book)
}

func (k ChapterKey) String() string {
	return fmt.Sprintf("%s %d", k.Book, k.Chapter)
}

// Reference is a parsed (book, chapter, verse) triple. Verse is 0 when the
// query named no verse.
type Reference struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse,omitempty"`
}

// Key returns the chapter addressed by the reference.
func (r Reference) Key() ChapterKey {
	return ChapterKey{Book: r.Book, Chapter: r.Chapter}
}

// CloneVerses returns a copy of vs so callers can't mutate shared tables.
func CloneVerses(vs []Verse) []Verse {
	if vs == nil {
		return nil
	}
	out := make([]Verse, len(vs))
	copy(out, vs)
	return out
}
