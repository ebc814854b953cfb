package ops

import (
	"github.com/hpungsan/verso/internal/cache"
	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/fetch"
	"github.com/hpungsan/verso/internal/scripture"
	"github.com/hpungsan/verso/internal/storage"
)

// DefaultPreviewVerseLimit is how many verses a direct reference returns when unconfigured.
const DefaultPreviewVerseLimit = 5

// MaxQueryLength bounds free-text queries accepted from the surfaces.
const MaxQueryLength = 500

// Engine is the Search Orchestrator plus the catalog, daily-verse and cache operations.
// It holds no per-request state and is safe for sequential reuse.
type Engine struct {
	cfg     *config.Config
	cache   *cache.Store
	fetcher *fetch.Fetcher
	topics  scripture.TopicTable
	books   []string
}

// New wires an Engine over a storage port and an ordered source list.
// A nil cfg uses config.DefaultConfig(); a nil conn is treated as always online.
func New(port storage.Port, cfg *config.Config, sources []fetch.Source, conn fetch.Connectivity) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	store := cache.New(port, cache.Options{
		SchemaVersion: cfg.CacheSchemaVersion,
		SearchLimit:   cfg.SearchResultLimit,
	})
	return &Engine{
		cfg:     cfg,
		cache:   store,
		fetcher: fetch.NewFetcher(store, sources, conn, cfg.FetchTimeout()),
		topics:  scripture.Topics(),
		books:   scripture.BookNames(),
	}
}

// Cache exposes the engine's chapter cache.
func (e *Engine) Cache() *cache.Store { return e.cache }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() *config.Config { return e.cfg }

func (e *Engine) previewLimit() int {
	if e.cfg.PreviewVerseLimit > 0 {
		return e.cfg.PreviewVerseLimit
	}
	return DefaultPreviewVerseLimit
}
