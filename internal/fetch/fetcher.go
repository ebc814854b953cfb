package fetch

import (
	"context"
	"strings"
	"time"

	"github.com/hpungsan/verso/internal/cache"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/scripture"
)

// Tier names reported in Result.Source besides the source names.
const (
	TierCache = "cache"
	TierSeed  = "seed"
	TierNone  = "none"
)

// DefaultTimeout bounds each remote candidate when none is configured.
const DefaultTimeout = 10 * time.Second

// Result is a fetched chapter and the tier that produced it.
type Result struct {
	Verses []scripture.Verse `json:"verses"`
	Source string            `json:"source"`
}

// Fetcher resolves chapters through cache, remote candidates and the seed table, in that order.
type Fetcher struct {
	cache   *cache.Store
	sources []Source
	conn    Connectivity
	timeout time.Duration
}

// NewFetcher creates a fetcher. A nil conn is treated as always online.
func NewFetcher(store *cache.Store, sources []Source, conn Connectivity, timeout time.Duration) *Fetcher {
	if conn == nil {
		conn = Static(true)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{cache: store, sources: sources, conn: conn, timeout: timeout}
}

// FetchChapter returns the verses of (book, chapter), or an empty slice. It never fails.
func (f *Fetcher) FetchChapter(ctx context.Context, book string, chapter int) []scripture.Verse {
	return f.Fetch(ctx, book, chapter).Verses
}

// Fetch is FetchChapter plus the name of the tier that answered.
func (f *Fetcher) Fetch(ctx context.Context, book string, chapter int) Result {
	if strings.TrimSpace(book) == "" || chapter < 1 {
		return Result{Verses: []scripture.Verse{}, Source: TierNone}
	}
	if b, ok := scripture.LookupBook(book); ok {
		book = b.Name
	}
	key := scripture.ChapterKey{Book: book, Chapter: chapter}
	log := logging.FromContext(ctx).With("chapter_key", key.String())

	steps := []Step[[]scripture.Verse]{{
		Name: TierCache,
		Run: func(ctx context.Context) ([]scripture.Verse, bool) {
			return f.cache.Get(ctx, book, chapter)
		},
	}}
	steps = append(steps, f.remoteSteps(key)...)
	steps = append(steps, Step[[]scripture.Verse]{
		Name: TierSeed,
		Run: func(context.Context) ([]scripture.Verse, bool) {
			vs := scripture.SeedChapter(book, chapter)
			return vs, len(vs) > 0
		},
	})

	verses, source, ok := FirstSuccess(ctx, steps)
	if !ok {
		log.Debug("chapter not found in any tier")
		return Result{Verses: []scripture.Verse{}, Source: TierNone}
	}
	log.Debug("chapter resolved", "source", source, "verses", len(verses))
	return Result{Verses: verses, Source: source}
}

// remoteSteps expands path variations × sources into one step per distinct location.
// Connectivity is checked lazily, at most once per call, on the first network candidate.
func (f *Fetcher) remoteSteps(key scripture.ChapterKey) []Step[[]scripture.Verse] {
	var (
		checked bool
		online  bool
	)
	isOnline := func(ctx context.Context) bool {
		if !checked {
			online = f.conn.Online(ctx)
			checked = true
			if !online {
				logging.FromContext(ctx).Debug("offline: skipping network sources", "chapter_key", key.String())
			}
		}
		return online
	}

	seen := make(map[string]bool)
	var steps []Step[[]scripture.Verse]
	for _, v := range scripture.PathVariations(key.Book) {
		for _, src := range f.sources {
			if !src.Usable() {
				continue
			}
			loc := src.Location(v, key.Chapter)
			id := src.Name + "|" + loc
			if seen[id] {
				continue
			}
			seen[id] = true

			steps = append(steps, Step[[]scripture.Verse]{
				Name: src.Name,
				Run: func(ctx context.Context) ([]scripture.Verse, bool) {
					if src.Network && !isOnline(ctx) {
						return nil, false
					}
					return f.attempt(ctx, src, loc, key)
				},
			})
		}
	}
	return steps
}

// attempt retrieves and parses one candidate, writing a success through to the cache.
func (f *Fetcher) attempt(ctx context.Context, src Source, loc string, key scripture.ChapterKey) ([]scripture.Verse, bool) {
	log := logging.FromContext(ctx).With("source", src.Name, "location", loc)

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := src.Retriever.Retrieve(attemptCtx, loc)
	if err != nil {
		log.Debug("candidate failed", "error", err)
		return nil, false
	}

	res, err := Parse(body, key)
	if err != nil {
		log.Warn("candidate returned malformed body", "error", err)
		return nil, false
	}
	if res.MissingText > 0 {
		log.Warn("verses without text", "count", res.MissingText)
	}
	if res.Positional > 0 {
		log.Debug("verses numbered by position", "count", res.Positional)
	}

	if err := f.cache.Put(ctx, key.Book, key.Chapter, res.Verses); err != nil {
		log.Warn("cache write failed", "error", err)
	}
	return res.Verses, true
}
