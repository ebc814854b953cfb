package ops

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/db"
	"github.com/hpungsan/verso/internal/fetch"
)

// TestFullWorkflow exercises the engine over SQLite and real sources:
// remote fetch → cache hit → text search → bundle fallback → inventory → purge.
func TestFullWorkflow(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()

	var hits atomic.Int32
	body := chapterJSON(t, "Juan", 3, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/Juan/juan_3.json" {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	defer srv.Close()

	bundleDir := filepath.Join(baseDir, "bundle", "Salmos")
	require.NoError(t, os.MkdirAll(bundleDir, 0o755))
	nested := `{"chapters":[{"chapter":23,"verses":[{"verse":1,"text":"Jehová es mi pastor; nada me faltará."}]}]}`
	require.NoError(t, os.WriteFile(filepath.Join(bundleDir, "salmos.json"), []byte(nested), 0o644))

	database, err := db.Init(baseDir)
	require.NoError(t, err)
	defer database.Close()

	cfg := config.DefaultConfig()
	cfg.PrimaryHost = srv.URL
	e := New(db.NewKVStore(database), cfg, fetch.SourcesFromConfig(cfg, baseDir, srv.Client()), fetch.Static(true))

	// 1. Direct reference fetched from the primary host
	out, err := e.SearchVerses(ctx, SearchInput{Query: "Juan 3:16"})
	require.NoError(t, err)
	require.Equal(t, RouteReference, out.Route)
	require.Len(t, out.Verses, 5)
	require.Equal(t, int32(1), hits.Load())

	// 2. Whole chapter now comes from the SQLite cache
	ch, err := e.Chapter(ctx, ChapterInput{Book: "Juan", Chapter: 3})
	require.NoError(t, err)
	require.Equal(t, fetch.TierCache, ch.Source)
	require.Len(t, ch.Verses, 8)
	require.Equal(t, int32(1), hits.Load())

	// 3. Text search over cached chapters
	text, err := e.SearchVerses(ctx, SearchInput{Query: "juan 3:7 texto"})
	require.NoError(t, err)
	require.Equal(t, RouteReference, text.Route, "a leading book name still routes as a reference")

	text, err = e.SearchVerses(ctx, SearchInput{Query: "3:7 texto"})
	require.NoError(t, err)
	require.Equal(t, RouteText, text.Route)
	require.Len(t, text.Verses, 1)
	require.Equal(t, 7, text.Verses[0].Verse)

	// 4. Primary and secondary miss; the nested bundle file answers
	ps, err := e.Chapter(ctx, ChapterInput{Book: "salmos", Chapter: 23})
	require.NoError(t, err)
	require.Equal(t, "bundle", ps.Source)
	require.Len(t, ps.Verses, 1)

	// 5. Inventory lists both chapters
	inv, err := e.CacheInventory(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, inv.Total)

	// 6. Purge and verify the next read goes back to the network
	purged, err := e.CachePurge(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, purged.Purged)

	before := hits.Load()
	_, err = e.Chapter(ctx, ChapterInput{Book: "Juan", Chapter: 3})
	require.NoError(t, err)
	require.Equal(t, before+1, hits.Load())
}
