package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

func TestResolve_DirectReferencePreview(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, testBundle(t))

	res := e.Resolve(context.Background(), FreeText{Query: "Juan 3:16"})
	assert.Equal(t, RouteReference, res.Route)
	require.NotNil(t, res.Reference)
	assert.Equal(t, scripture.Reference{Book: "Juan", Chapter: 3, Verse: 16}, *res.Reference)

	require.Len(t, res.Verses, 5)
	for _, v := range res.Verses {
		assert.Equal(t, "Juan", v.Book)
		assert.Equal(t, 3, v.Chapter)
	}
	assert.Equal(t, 1, res.Verses[0].Verse)
}

func TestResolve_PreviewLimitConfigurable(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PreviewVerseLimit = 2
	e, _, _ := newTestEngine(t, cfg, false, testBundle(t))

	assert.Len(t, e.Search(context.Background(), FreeText{Query: "salmos 23"}), 2)
}

func TestResolve_ChapterRequestUnsliced(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, testBundle(t))

	res := e.Resolve(context.Background(), ChapterRequest{Book: "juan", Chapter: 3})
	assert.Equal(t, RouteChapter, res.Route)
	assert.Len(t, res.Verses, 8)
}

func TestResolve_DirectReferenceQuery(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, testBundle(t))

	res := e.Resolve(context.Background(), DirectReference{Book: "Salmos", Chapter: 23})
	assert.Equal(t, RouteReference, res.Route)
	assert.Len(t, res.Verses, 5)
}

func TestResolve_Topic(t *testing.T) {
	e, net, _ := newTestEngine(t, nil, true, nil)

	want, ok := scripture.Topics().Match("ansiedad")
	require.True(t, ok)

	res := e.Resolve(context.Background(), FreeText{Query: "ansiedad"})
	assert.Equal(t, RouteTopic, res.Route)
	assert.Equal(t, "ansiedad", res.Topic)
	assert.Equal(t, want.Verses, res.Verses)
	assert.Zero(t, net.Calls(), "topic queries never fetch")
}

func TestResolve_TopicAccentAndCase(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)

	res := e.Resolve(context.Background(), FreeText{Query: "Necesito PERDON"})
	assert.Equal(t, RouteTopic, res.Route)
	assert.Equal(t, "perdón", res.Topic)
}

func TestResolve_TopicFilters(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)
	ctx := context.Background()

	res := e.Resolve(ctx, FreeText{Query: "ansiedad", BookFilter: "filipenses"})
	require.Len(t, res.Verses, 1)
	assert.Equal(t, "Filipenses", res.Verses[0].Book)

	res = e.Resolve(ctx, FreeText{Query: "ansiedad", CategoryFilter: "Evangelios"})
	require.Len(t, res.Verses, 1)
	assert.Equal(t, "Mateo", res.Verses[0].Book)

	res = e.Resolve(ctx, FreeText{Query: "ansiedad", BookFilter: "Apocalipsis"})
	assert.Equal(t, RouteTopic, res.Route)
	assert.Empty(t, res.Verses)
}

func TestResolve_Empty(t *testing.T) {
	e, net, _ := newTestEngine(t, nil, true, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		res := e.Resolve(context.Background(), FreeText{Query: q})
		assert.Equal(t, RouteEmpty, res.Route)
		assert.NotNil(t, res.Verses)
		assert.Empty(t, res.Verses)
	}
	assert.Zero(t, net.Calls())
}

func TestResolve_NoMatchEmptyCache(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, true, nil)

	res := e.Resolve(context.Background(), FreeText{Query: "nonexistent-phrase-zzz"})
	assert.Equal(t, RouteNone, res.Route)
	assert.NotNil(t, res.Verses)
	assert.Empty(t, res.Verses)
}

func TestResolve_TextSearchOverCache(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)
	ctx := context.Background()

	require.NoError(t, e.Cache().Put(ctx, "Salmos", 23, []scripture.Verse{
		{Book: "Salmos", Chapter: 23, Verse: 1, Text: "Jehová es mi pastor; nada me faltará."},
	}))
	require.NoError(t, e.Cache().Put(ctx, "Juan", 10, []scripture.Verse{
		{Book: "Juan", Chapter: 10, Verse: 11, Text: "Yo soy el buen pastor"},
	}))

	res := e.Resolve(ctx, FreeText{Query: "pastor"})
	assert.Equal(t, RouteText, res.Route)
	assert.Len(t, res.Verses, 2)

	res = e.Resolve(ctx, FreeText{Query: "pastor", CategoryFilter: "poéticos"})
	require.Len(t, res.Verses, 1)
	assert.Equal(t, "Salmos", res.Verses[0].Book)

	res = e.Resolve(ctx, FreeText{Query: "pastor", BookFilter: "Génesis"})
	assert.Equal(t, RouteNone, res.Route)
}

func TestResolve_TextSearchCapped(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)
	ctx := context.Background()

	for ch := 1; ch <= 3; ch++ {
		verses := make([]scripture.Verse, 10)
		for i := range verses {
			verses[i] = scripture.Verse{Book: "Proverbios", Chapter: ch, Verse: i + 1, Text: "el principio de la sabiduría"}
		}
		require.NoError(t, e.Cache().Put(ctx, "Proverbios", ch, verses))
	}

	assert.Len(t, e.Search(ctx, FreeText{Query: "sabiduria"}), 15)
}

// Empty cache, network unreachable, no bundle entry: the seed supplies Josué 1:9.
func TestResolve_OfflineSeedFallback(t *testing.T) {
	e, net, port := newTestEngine(t, nil, false, testBundle(t))
	ctx := context.Background()

	res := e.Resolve(ctx, FreeText{Query: "Josué 1"})
	assert.Equal(t, RouteReference, res.Route)
	require.Len(t, res.Verses, 1)
	assert.Equal(t, "Mira que te mando que te esfuerces y seas valiente; no temas ni desmayes, porque Jehová tu Dios estará contigo en dondequiera que vayas.", res.Verses[0].Text)
	assert.Zero(t, net.Calls(), "offline: network candidates are skipped")

	keys, err := port.Keys(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, keys, "seed results are not cached")
}

func TestResolve_CacheFirst(t *testing.T) {
	e, net, _ := newTestEngine(t, nil, true, nil)
	ctx := context.Background()

	require.NoError(t, e.Cache().Put(ctx, "Romanos", 12, []scripture.Verse{
		{Book: "Romanos", Chapter: 12, Verse: 2, Text: "No os conforméis a este siglo"},
	}))

	res := e.Resolve(ctx, FreeText{Query: "romanos 12:2"})
	require.Len(t, res.Verses, 1)
	assert.Zero(t, net.Calls())
}

func TestSearchVerses_Validation(t *testing.T) {
	e, _, _ := newTestEngine(t, nil, false, nil)
	ctx := context.Background()

	_, err := e.SearchVerses(ctx, SearchInput{Query: "  "})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	long := make([]rune, MaxQueryLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = e.SearchVerses(ctx, SearchInput{Query: string(long)})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	_, err = e.SearchVerses(ctx, SearchInput{Query: "paz", Category: "cartas perdidas"})
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))

	out, err := e.SearchVerses(ctx, SearchInput{Query: " paz "})
	require.NoError(t, err)
	assert.Equal(t, "paz", out.Query)
	assert.Equal(t, RouteTopic, out.Route)
	assert.Equal(t, len(out.Verses), out.Count)
}
