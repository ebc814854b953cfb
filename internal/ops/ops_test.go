package ops

import (
	"context"
	"fmt"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/fetch"
	"github.com/hpungsan/verso/internal/scripture"
)

func TestChapter(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, testBundle(t))

	out, err := e.Chapter(context.Background(), ChapterInput{Book: "JUAN", Chapter: 3})
	require.NoError(t, err)
	assert.Equal(t, "Juan", out.Book)
	assert.Equal(t, "bundle", out.Source)
	assert.Len(t, out.Verses, 8)

	out, err = e.Chapter(context.Background(), ChapterInput{Book: "Juan", Chapter: 3})
	require.NoError(t, err)
	assert.Equal(t, fetch.TierCache, out.Source, "second read is served from the cache")
}

func TestChapter_Validation(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)
	ctx := context.Background()

	_, err := e.Chapter(ctx, ChapterInput{Book: "", Chapter: 1})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = e.Chapter(ctx, ChapterInput{Book: "Juan", Chapter: 0})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = e.Chapter(ctx, ChapterInput{Book: "Abdías", Chapter: 1})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestChapter_SeedSource(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)

	out, err := e.Chapter(context.Background(), ChapterInput{Book: "josue", Chapter: 1})
	require.NoError(t, err)
	assert.Equal(t, fetch.TierSeed, out.Source)
	assert.Equal(t, "Josué", out.Book)
}

func TestBooks(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)

	all, err := e.Books("")
	require.NoError(t, err)
	assert.Equal(t, 66, all.Count)
	assert.Len(t, all.Categories, 10)

	gospels, err := e.Books("evangelios")
	require.NoError(t, err)
	assert.Equal(t, 4, gospels.Count)
	assert.Equal(t, "Mateo", gospels.Books[0].Name)

	ot, err := e.Books("Antiguo Testamento")
	require.NoError(t, err)
	assert.Equal(t, 39, ot.Count)

	_, err = e.Books("apócrifos")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestDaily(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)

	epoch := e.Daily(time.Unix(0, 0))
	assert.Equal(t, "1970-01-01", epoch.Date)
	assert.Equal(t, scripture.SeedVerses()[0], epoch.Verse)

	next := e.Daily(time.Unix(86400, 0))
	assert.Equal(t, scripture.SeedVerses()[1], next.Verse)

	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, e.Daily(morning), e.Daily(evening), "same UTC day, same verse")

	before := e.Daily(time.Date(1969, 12, 31, 12, 0, 0, 0, time.UTC))
	assert.NotEmpty(t, before.Verse.Text)
}

func TestParseDay(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	got, err := ParseDay("", now)
	require.NoError(t, err)
	assert.Equal(t, now, got)

	got, err = ParseDay(" 2024-12-25 ", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("25/12/2024", now)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestDailyPool_NoRepeats(t *testing.T) {
	pool := dailyPool(scripture.Topics())
	seen := make(map[string]bool)
	for _, v := range pool {
		id := fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
		assert.False(t, seen[id], "repeated %s", id)
		seen[id] = true
	}
	assert.Greater(t, len(pool), len(scripture.SeedVerses()))
}

func TestWarm(t *testing.T) {
	bundle := fstest.MapFS{
		"Rut/rut_1.json": &fstest.MapFile{Data: chapterJSON(t, "Rut", 1, 3)},
		"Rut/rut_2.json": &fstest.MapFile{Data: chapterJSON(t, "Rut", 2, 3)},
		"Rut/rut_3.json": &fstest.MapFile{Data: chapterJSON(t, "Rut", 3, 3)},
	}
	e, _, _ := newTestEngine(t, nil, false, bundle)
	ctx := context.Background()

	out, err := e.Warm(ctx, WarmInput{Book: "rut"})
	require.NoError(t, err)
	assert.Equal(t, "Rut", out.Book)
	assert.Equal(t, 4, out.Chapters)
	assert.Equal(t, 3, out.Fetched)
	assert.Equal(t, 0, out.Cached)
	assert.Equal(t, []int{4}, out.Missing)

	again, err := e.Warm(ctx, WarmInput{Book: "Rut"})
	require.NoError(t, err)
	assert.Equal(t, 0, again.Fetched)
	assert.Equal(t, 3, again.Cached)
}

func TestWarm_Errors(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)

	_, err := e.Warm(context.Background(), WarmInput{Book: " "})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = e.Warm(context.Background(), WarmInput{Book: "Macabeos"})
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Warm(ctx, WarmInput{Book: "Rut"})
	assert.True(t, errors.Is(err, errors.ErrUnavailable))
}

func TestCacheInventoryAndPurge(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, testBundle(t))
	ctx := context.Background()

	empty, err := e.CachePurge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Purged)
	assert.Equal(t, "No cached chapters to purge", empty.Message)

	e.Search(ctx, ChapterRequest{Book: "Juan", Chapter: 3})
	e.Search(ctx, ChapterRequest{Book: "Salmos", Chapter: 23})

	inv, err := e.CacheInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.Total)
	assert.Equal(t, "v2", inv.Schema)
	assert.Equal(t, "Juan", inv.Items[0].Book)
	assert.Equal(t, 8, inv.Items[0].Verses)

	out, err := e.CachePurge(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Purged)
	assert.Equal(t, "Removed 2 cached chapters", out.Message)

	inv, err = e.CacheInventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Total)
}
