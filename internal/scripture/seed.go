package scripture

// seed is the last-resort verse set, keyed by chapter. It keeps the engine
// useful with no network and an empty cache.
var seed = []Verse{
	josue1v9,
	juan3v16,
	v("Salmos", 23, 1, "Jehová es mi pastor; nada me faltará."),
	v("Salmos", 23, 2, "En lugares de delicados pastos me hará descansar; junto a aguas de reposo me pastoreará."),
	v("Proverbios", 3, 5, "Fíate de Jehová de todo tu corazón, y no te apoyes en tu propia prudencia."),
	v("Proverbios", 3, 6, "Reconócelo en todos tus caminos, y él enderezará tus veredas."),
	jeremias29v11,
	romanos8v28,
	filipenses4v13,
	isaias41v10,
}

// SeedChapter returns the seed verses for the chapter, or nil.
func SeedChapter(book string, chapter int) []Verse {
	key := ChapterKey{Book: book, Chapter: chapter}
	var out []Verse
	for _, s := range seed {
		if key.Equal(ChapterKey{Book: s.Book, Chapter: s.Chapter}) {
			out = append(out, s)
		}
	}
	return out
}

// SeedVerses returns a copy of the whole seed set.
func SeedVerses() []Verse {
	return CloneVerses(seed)
}
