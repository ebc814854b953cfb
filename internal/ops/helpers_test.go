package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/fetch"
	"github.com/hpungsan/verso/internal/storage"
)

// countingRetriever fails every call and counts them.
type countingRetriever struct {
	mu    sync.Mutex
	calls int
}

func (c *countingRetriever) Retrieve(context.Context, string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return nil, fmt.Errorf("unreachable")
}

func (c *countingRetriever) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// chapterJSON builds a flat chapter body with n numbered verses.
func chapterJSON(t *testing.T, book string, chapter, n int) []byte {
	t.Helper()
	type rec struct {
		Verse int    `json:"verse"`
		Text  string `json:"text"`
	}
	verses := make([]rec, n)
	for i := range verses {
		verses[i] = rec{Verse: i + 1, Text: fmt.Sprintf("%s %d:%d texto", book, chapter, i+1)}
	}
	data, err := json.Marshal(map[string]any{"book": book, "chapter": chapter, "verses": verses})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	return data
}

// testBundle serves Juan 3 (8 verses) and Salmos 23 (6 verses) per-chapter files.
func testBundle(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"Juan/juan_3.json":      &fstest.MapFile{Data: chapterJSON(t, "Juan", 3, 8)},
		"Salmos/salmos_23.json": &fstest.MapFile{Data: chapterJSON(t, "Salmos", 23, 6)},
	}
}

// newTestEngine builds an engine whose only sources are an unreachable network
// source (counted) and an in-memory bundle.
func newTestEngine(t *testing.T, cfg *config.Config, online bool, bundle fstest.MapFS) (*Engine, *countingRetriever, storage.Port) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	net := &countingRetriever{}
	sources := []fetch.Source{
		{Name: "primary", Network: true, Base: "http://unreachable.test", Pattern: "{folder}/{file}_{chapter}.json", Retriever: net},
	}
	if bundle != nil {
		sources = append(sources, fetch.Source{
			Name: "bundle", Base: "bundle", Pattern: "{folder}/{file}_{chapter}.json",
			Retriever: fetch.NewBundleRetriever(bundle),
		})
	}
	port := storage.NewMemory()
	return New(port, cfg, sources, fetch.Static(online)), net, port
}
