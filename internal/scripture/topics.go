package scripture

import "strings"

// TopicEntry associates a topic keyword with a curated verse list.
type TopicEntry struct {
	Keyword string  `json:"keyword"`
	Verses  []Verse `json:"verses"`
}

// TopicTable is an ordered, read-only keyword table. Order is the tie-break
// when a query contains more than one keyword.
type TopicTable []TopicEntry

// Match returns the first entry whose normalized keyword is a substring of the
// normalized text. Matching is plain containment, so a short keyword can
// match inside an unrelated word ("paz" in "capaz").
func (t TopicTable) Match(text string) (TopicEntry, bool) {
	n := Normalize(text)
	if n == "" {
		return TopicEntry{}, false
	}
	for _, e := range t {
		k := Normalize(e.Keyword)
		if k != "" && strings.Contains(n, k) {
			return TopicEntry{Keyword: e.Keyword, Verses: CloneVerses(e.Verses)}, true
		}
	}
	return TopicEntry{}, false
}

// Keywords lists the table's keywords in order.
func (t TopicTable) Keywords() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Keyword
	}
	return out
}

func v(book string, chapter, verse int, text string) Verse {
	return Verse{Book: book, Chapter: chapter, Verse: verse, Text: text}
}

var (
	filipenses4v6   = v("Filipenses", 4, 6, "Por nada estéis afanosos, sino sean conocidas vuestras peticiones delante de Dios en toda oración y ruego, con acción de gracias.")
	filipenses4v7   = v("Filipenses", 4, 7, "Y la paz de Dios, que sobrepasa todo entendimiento, guardará vuestros corazones y vuestros pensamientos en Cristo Jesús.")
	filipenses4v13  = v("Filipenses", 4, 13, "Todo lo puedo en Cristo que me fortalece.")
	pedro5v7        = v("1 Pedro", 5, 7, "echando toda vuestra ansiedad sobre él, porque él tiene cuidado de vosotros.")
	mateo6v34       = v("Mateo", 6, 34, "Así que, no os afanéis por el día de mañana, porque el día de mañana traerá su afán. Basta a cada día su propio mal.")
	isaias41v10     = v("Isaías", 41, 10, "No temas, porque yo estoy contigo; no desmayes, porque yo soy tu Dios que te esfuerzo; siempre te ayudaré, siempre te sustentaré con la diestra de mi justicia.")
	josue1v9        = v("Josué", 1, 9, "Mira que te mando que te esfuerces y seas valiente; no temas ni desmayes, porque Jehová tu Dios estará contigo en dondequiera que vayas.")
	salmos56v3      = v("Salmos", 56, 3, "En el día que temo, Yo en ti confío.")
	timoteo1v7      = v("2 Timoteo", 1, 7, "Porque no nos ha dado Dios espíritu de cobardía, sino de poder, de amor y de dominio propio.")
	salmos27v1      = v("Salmos", 27, 1, "Jehová es mi luz y mi salvación; ¿de quién temeré? Jehová es la fortaleza de mi vida; ¿de quién he de atemorizarme?")
	salmos34v18     = v("Salmos", 34, 18, "Cercano está Jehová a los quebrantados de corazón; y salva a los contritos de espíritu.")
	mateo5v4        = v("Mateo", 5, 4, "Bienaventurados los que lloran, porque ellos recibirán consolación.")
	deut31v6        = v("Deuteronomio", 31, 6, "Esforzaos y cobrad ánimo; no temáis, ni tengáis miedo de ellos, porque Jehová tu Dios es el que va contigo; no te dejará, ni te desamparará.")
	mateo28v20      = v("Mateo", 28, 20, "enseñándoles que guarden todas las cosas que os he mandado; y he aquí yo estoy con vosotros todos los días, hasta el fin del mundo. Amén.")
	juan1v9         = v("1 Juan", 1, 9, "Si confesamos nuestros pecados, él es fiel y justo para perdonar nuestros pecados, y limpiarnos de toda maldad.")
	efesios4v32     = v("Efesios", 4, 32, "Antes sed benignos unos con otros, misericordiosos, perdonándoos unos a otros, como Dios también os perdonó a vosotros en Cristo.")
	corintios13v4   = v("1 Corintios", 13, 4, "El amor es sufrido, es benigno; el amor no tiene envidia, el amor no es jactancioso, no se envanece;")
	juan3v16        = v("Juan", 3, 16, "Porque de tal manera amó Dios al mundo, que ha dado a su Hijo unigénito, para que todo aquel que en él cree, no se pierda, mas tenga vida eterna.")
	juan14v27       = v("Juan", 14, 27, "La paz os dejo, mi paz os doy; yo no os la doy como el mundo la da. No se turbe vuestro corazón, ni tenga miedo.")
	jeremias29v11   = v("Jeremías", 29, 11, "Porque yo sé los pensamientos que tengo acerca de vosotros, dice Jehová, pensamientos de paz, y no de mal, para daros el fin que esperáis.")
	romanos15v13    = v("Romanos", 15, 13, "Y el Dios de esperanza os llene de todo gozo y paz en el creer, para que abundéis en esperanza por el poder del Espíritu Santo.")
	isaias40v31     = v("Isaías", 40, 31, "pero los que esperan a Jehová tendrán nuevas fuerzas; levantarán alas como las águilas; correrán, y no se cansarán; caminarán, y no se fatigarán.")
	romanos8v28     = v("Romanos", 8, 28, "Y sabemos que a los que aman a Dios, todas las cosas les ayudan a bien, esto es, a los que conforme a su propósito son llamados.")
	proverbios19v21 = v("Proverbios", 19, 21, "Muchos pensamientos hay en el corazón del hombre; mas el consejo de Jehová permanecerá.")
	tesal5v18       = v("1 Tesalonicenses", 5, 18, "Dad gracias en todo, porque esta es la voluntad de Dios para con vosotros en Cristo Jesús.")
	salmos107v1     = v("Salmos", 107, 1, "Alabad a Jehová, porque él es bueno; porque para siempre es su misericordia.")
)

var topics = TopicTable{
	{Keyword: "ansiedad", Verses: []Verse{filipenses4v6, pedro5v7, mateo6v34}},
	{Keyword: "miedo", Verses: []Verse{isaias41v10, josue1v9, salmos56v3}},
	{Keyword: "temor", Verses: []Verse{timoteo1v7, salmos27v1}},
	{Keyword: "tristeza", Verses: []Verse{salmos34v18, mateo5v4}},
	{Keyword: "soledad", Verses: []Verse{deut31v6, mateo28v20}},
	{Keyword: "perdón", Verses: []Verse{juan1v9, efesios4v32}},
	{Keyword: "amor", Verses: []Verse{corintios13v4, juan3v16}},
	{Keyword: "paz", Verses: []Verse{juan14v27, filipenses4v7}},
	{Keyword: "esperanza", Verses: []Verse{jeremias29v11, romanos15v13}},
	{Keyword: "fortaleza", Verses: []Verse{isaias40v31, filipenses4v13}},
	{Keyword: "propósito", Verses: []Verse{romanos8v28, proverbios19v21}},
	{Keyword: "gratitud", Verses: []Verse{tesal5v18, salmos107v1}},
}

// Topics returns the built-in topic table.
func Topics() TopicTable {
	out := make(TopicTable, len(topics))
	for i, e := range topics {
		out[i] = TopicEntry{Keyword: e.Keyword, Verses: CloneVerses(e.Verses)}
	}
	return out
}
