// Package cache is the chapter cache: a schema-versioned view over a storage.Port
// that is read before and written after every remote fetch.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/scripture"
	"github.com/hpungsan/verso/internal/storage"
)

// Namespace prefixes every key the cache writes.
const Namespace = "verso:chapter:"

const (
	DefaultSchemaVersion = "v2"
	DefaultSearchLimit   = 15
)

// Options tunes a Store. Zero values take the defaults.
type Options struct {
	SchemaVersion string
	SearchLimit   int
}

// Store is the Local Cache Store.
type Store struct {
	port   storage.Port
	schema string
	limit  int
}

// payload is the JSON persisted per chapter.
type payload struct {
	Book    string            `json:"book"`
	Chapter int               `json:"chapter"`
	Verses  []scripture.Verse `json:"verses"`
}

// Entry summarizes one cached chapter.
type Entry struct {
	Key     string `json:"key"`
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verses  int    `json:"verses"`
}

// New creates a Store over port.
func New(port storage.Port, opts Options) *Store {
	if opts.SchemaVersion == "" {
		opts.SchemaVersion = DefaultSchemaVersion
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	return &Store{port: port, schema: opts.SchemaVersion, limit: opts.SearchLimit}
}

// Prefix returns the key prefix for the current schema version.
func (s *Store) Prefix() string {
	return Namespace + s.schema + ":"
}

// Key returns the storage key for (book, chapter).
// "1 Reyes" and "1reyes" share a key; accents and case are folded.
func (s *Store) Key(book string, chapter int) string {
	return fmt.Sprintf("%s%s:%d", s.Prefix(), scripture.CompactKey(book), chapter)
}

// Get returns the cached verses for (book, chapter).
// Unparseable or empty entries are removed and reported as a miss; storage
// failures are logged and also reported as a miss.
func (s *Store) Get(ctx context.Context, book string, chapter int) ([]scripture.Verse, bool) {
	key := s.Key(book, chapter)
	log := logging.FromContext(ctx)

	raw, ok, err := s.port.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	p, err := decode(key, raw)
	if err != nil {
		log.Warn("evicting malformed cache entry", "key", key, "error", err)
		s.evict(ctx, key)
		return nil, false
	}
	return p.Verses, true
}

// Put stores verses for (book, chapter), overwriting any previous entry.
// Empty verse lists are refused so a miss can never be cached as a hit.
func (s *Store) Put(ctx context.Context, book string, chapter int, verses []scripture.Verse) error {
	if len(verses) == 0 {
		return errors.NewInvalidRequest("refusing to cache an empty chapter")
	}
	if chapter < 1 {
		return errors.NewInvalidRequest("chapter must be >= 1")
	}

	data, err := json.Marshal(payload{Book: book, Chapter: chapter, Verses: verses})
	if err != nil {
		return errors.NewInternal(err)
	}
	return s.port.Set(ctx, s.Key(book, chapter), string(data))
}

// SearchText scans every cached chapter under the current schema, in key order,
// for verses whose text contains query (case- and accent-insensitive).
// At most the configured limit is returned. Corrupt entries met along the way are evicted.
func (s *Store) SearchText(ctx context.Context, query string) []scripture.Verse {
	needle := scripture.Normalize(query)
	if needle == "" {
		return []scripture.Verse{}
	}
	log := logging.FromContext(ctx)

	keys, err := s.port.Keys(ctx, s.Prefix())
	if err != nil {
		log.Warn("cache key scan failed", "error", err)
		return []scripture.Verse{}
	}

	results := []scripture.Verse{}
	for _, key := range keys {
		raw, ok, err := s.port.Get(ctx, key)
		if err != nil || !ok {
			continue
		}
		p, err := decode(key, raw)
		if err != nil {
			log.Warn("evicting malformed cache entry", "key", key, "error", err)
			s.evict(ctx, key)
			continue
		}
		for _, v := range p.Verses {
			if strings.Contains(scripture.Normalize(v.Text), needle) {
				results = append(results, v)
				if len(results) >= s.limit {
					return results
				}
			}
		}
	}
	return results
}

// Inventory lists the chapters cached under the current schema, in key order.
// Corrupt entries are skipped, not evicted.
func (s *Store) Inventory(ctx context.Context) ([]Entry, error) {
	keys, err := s.port.Keys(ctx, s.Prefix())
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		raw, ok, err := s.port.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		p, err := decode(key, raw)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Key: key, Book: p.Book, Chapter: p.Chapter, Verses: len(p.Verses)})
	}
	return entries, nil
}

// Purge removes every cached chapter across all schema versions and returns the count removed.
func (s *Store) Purge(ctx context.Context) (int, error) {
	keys, err := s.port.Keys(ctx, Namespace)
	if err != nil {
		return 0, err
	}
	for i, key := range keys {
		if err := s.port.Remove(ctx, key); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}

func (s *Store) evict(ctx context.Context, key string) {
	if err := s.port.Remove(ctx, key); err != nil {
		logging.FromContext(ctx).Warn("cache eviction failed", "key", key, "error", err)
	}
}

func decode(key, raw string) (*payload, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.NewMalformedCache(key, err)
	}
	if len(p.Verses) == 0 {
		return nil, errors.NewMalformedCache(key, fmt.Errorf("no verses"))
	}
	return &p, nil
}
