package scripture

// Testament names.
const (
	OldTestament = "Antiguo Testamento"
	NewTestament = "Nuevo Testamento"
)

// Book categories, in canonical order.
const (
	CategoryPentateuch     = "Pentateuco"
	CategoryHistorical     = "Históricos"
	CategoryPoetic         = "Poéticos"
	CategoryMajorProphets  = "Profetas mayores"
	CategoryMinorProphets  = "Profetas menores"
	CategoryGospels        = "Evangelios"
	CategoryChurchHistory  = "Historia de la iglesia"
	CategoryPaulineLetters = "Epístolas paulinas"
	CategoryGeneralLetters = "Epístolas generales"
	CategoryProphecy       = "Profecía"
)

// Book is an entry of the book catalog.
type Book struct {
	Name      string `json:"name"`
	Testament string `json:"testament"`
	Category  string `json:"category"`
	Chapters  int    `json:"chapters"`
}

// catalog holds the canonical books in canonical order. Order matters:
// FindDirectReference checks books in this order.
var catalog = []Book{
	{"Génesis", OldTestament, CategoryPentateuch, 50},
	{"Éxodo", OldTestament, CategoryPentateuch, 40},
	{"Levítico", OldTestament, CategoryPentateuch, 27},
	{"Números", OldTestament, CategoryPentateuch, 36},
	{"Deuteronomio", OldTestament, CategoryPentateuch, 34},
	{"Josué", OldTestament, CategoryHistorical, 24},
	{"Jueces", OldTestament, CategoryHistorical, 21},
	{"Rut", OldTestament, CategoryHistorical, 4},
	{"1 Samuel", OldTestament, CategoryHistorical, 31},
	{"2 Samuel", OldTestament, CategoryHistorical, 24},
	{"1 Reyes", OldTestament, CategoryHistorical, 22},
	{"2 Reyes", OldTestament, CategoryHistorical, 25},
	{"1 Crónicas", OldTestament, CategoryHistorical, 29},
	{"2 Crónicas", OldTestament, CategoryHistorical, 36},
	{"Esdras", OldTestament, CategoryHistorical, 10},
	{"Nehemías", OldTestament, CategoryHistorical, 13},
	{"Ester", OldTestament, CategoryHistorical, 10},
	{"Job", OldTestament, CategoryPoetic, 42},
	{"Salmos", OldTestament, CategoryPoetic, 150},
	{"Proverbios", OldTestament, CategoryPoetic, 31},
	{"Eclesiastés", OldTestament, CategoryPoetic, 12},
	{"Cantares", OldTestament, CategoryPoetic, 8},
	{"Isaías", OldTestament, CategoryMajorProphets, 66},
	{"Jeremías", OldTestament, CategoryMajorProphets, 52},
	{"Lamentaciones", OldTestament, CategoryMajorProphets, 5},
	{"Ezequiel", OldTestament, CategoryMajorProphets, 48},
	{"Daniel", OldTestament, CategoryMajorProphets, 12},
	{"Oseas", OldTestament, CategoryMinorProphets, 14},
	{"Joel", OldTestament, CategoryMinorProphets, 3},
	{"Amós", OldTestament, CategoryMinorProphets, 9},
	{"Abdías", OldTestament, CategoryMinorProphets, 1},
	{"Jonás", OldTestament, CategoryMinorProphets, 4},
	{"Miqueas", OldTestament, CategoryMinorProphets, 7},
	{"Nahúm", OldTestament, CategoryMinorProphets, 3},
	{"Habacuc", OldTestament, CategoryMinorProphets, 3},
	{"Sofonías", OldTestament, CategoryMinorProphets, 3},
	{"Hageo", OldTestament, CategoryMinorProphets, 2},
	{"Zacarías", OldTestament, CategoryMinorProphets, 14},
	{"Malaquías", OldTestament, CategoryMinorProphets, 4},

	{"Mateo", NewTestament, CategoryGospels, 28},
	{"Marcos", NewTestament, CategoryGospels, 16},
	{"Lucas", NewTestament, CategoryGospels, 24},
	{"Juan", NewTestament, CategoryGospels, 21},
	{"Hechos", NewTestament, CategoryChurchHistory, 28},
	{"Romanos", NewTestament, CategoryPaulineLetters, 16},
	{"1 Corintios", NewTestament, CategoryPaulineLetters, 16},
	{"2 Corintios", NewTestament, CategoryPaulineLetters, 13},
	{"Gálatas", NewTestament, CategoryPaulineLetters, 6},
	{"Efesios", NewTestament, CategoryPaulineLetters, 6},
	{"Filipenses", NewTestament, CategoryPaulineLetters, 4},
	{"Colosenses", NewTestament, CategoryPaulineLetters, 4},
	{"1 Tesalonicenses", NewTestament, CategoryPaulineLetters, 5},
	{"2 Tesalonicenses", NewTestament, CategoryPaulineLetters, 3},
	{"1 Timoteo", NewTestament, CategoryPaulineLetters, 6},
	{"2 Timoteo", NewTestament, CategoryPaulineLetters, 4},
	{"Tito", NewTestament, CategoryPaulineLetters, 3},
	{"Filemón", NewTestament, CategoryPaulineLetters, 1},
	{"Hebreos", NewTestament, CategoryGeneralLetters, 13},
	{"Santiago", NewTestament, CategoryGeneralLetters, 5},
	{"1 Pedro", NewTestament, CategoryGeneralLetters, 5},
	{"2 Pedro", NewTestament, CategoryGeneralLetters, 3},
	{"1 Juan", NewTestament, CategoryGeneralLetters, 5},
	{"2 Juan", NewTestament, CategoryGeneralLetters, 1},
	{"3 Juan", NewTestament, CategoryGeneralLetters, 1},
	{"Judas", NewTestament, CategoryGeneralLetters, 1},
	{"Apocalipsis", NewTestament, CategoryProphecy, 22},
}

// Books returns a copy of the catalog in canonical order.
func Books() []Book {
	out := make([]Book, len(catalog))
	copy(out, catalog)
	return out
}

// BookNames returns the catalog's book names in canonical order.
func BookNames() []string {
	names := make([]string, len(catalog))
	for i, b := range catalog {
		names[i] = b.Name
	}
	return names
}

// LookupBook finds a catalog book by name, ignoring case and diacritics.
func LookupBook(name string) (Book, bool) {
	n := Normalize(name)
	for _, b := range catalog {
		if Normalize(b.Name) == n {
			return b, true
		}
	}
	return Book{}, false
}

// BooksInCategory returns the catalog books whose category or testament
// matches category (normalized). An empty category returns every book.
func BooksInCategory(category string) []Book {
	c := Normalize(category)
	if c == "" {
		return Books()
	}
	var out []Book
	for _, b := range catalog {
		if Normalize(b.Category) == c || Normalize(b.Testament) == c {
			out = append(out, b)
		}
	}
	return out
}

// Categories lists the catalog categories in canonical order.
func Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, b := range catalog {
		if !seen[b.Category] {
			seen[b.Category] = true
			out = append(out, b.Category)
		}
	}
	return out
}
