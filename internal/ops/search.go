package ops

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/scripture"
)

// Route names the branch of the decision order that produced a Result.
type Route string

const (
	RouteChapter   Route = "chapter"
	RouteReference Route = "reference"
	RouteEmpty     Route = "empty"
	RouteTopic     Route = "topic"
	RouteText      Route = "text"
	RouteNone      Route = "none"
)

// Result is the outcome of Resolve. Verses is never nil.
type Result struct {
	Route     Route                `json:"route"`
	Reference *scripture.Reference `json:"reference,omitempty"`
	Topic     string               `json:"topic,omitempty"`
	Verses    []scripture.Verse    `json:"verses"`
}

// Search resolves q and returns only the verses.
func (e *Engine) Search(ctx context.Context, q SearchQuery) []scripture.Verse {
	return e.Resolve(ctx, q).Verses
}

// Resolve runs the decision order, first matching branch wins:
// chapter request, empty text, direct reference, topic, cached text search.
// No branch fails; absence of a result is an empty slice.
func (e *Engine) Resolve(ctx context.Context, q SearchQuery) Result {
	ctx = logging.EnsureRequestID(ctx)
	log := logging.FromContext(ctx)

	switch q := q.(type) {
	case ChapterRequest:
		return Result{Route: RouteChapter, Verses: e.fetcher.FetchChapter(ctx, q.Book, q.Chapter)}

	case DirectReference:
		ref := scripture.Reference{Book: q.Book, Chapter: q.Chapter}
		return e.preview(ctx, ref)

	case FreeText:
		if scripture.Normalize(q.Query) == "" {
			return Result{Route: RouteEmpty, Verses: []scripture.Verse{}}
		}

		if ref, ok := scripture.FindDirectReference(q.Query, e.books); ok {
			log.Debug("direct reference", "book", ref.Book, "chapter", ref.Chapter)
			return e.preview(ctx, ref)
		}

		if entry, ok := e.topics.Match(q.Query); ok {
			log.Debug("topic match", "topic", entry.Keyword)
			return Result{Route: RouteTopic, Topic: entry.Keyword, Verses: filterVerses(entry.Verses, q)}
		}

		verses := filterVerses(e.cache.SearchText(ctx, q.Query), q)
		if len(verses) == 0 {
			return Result{Route: RouteNone, Verses: []scripture.Verse{}}
		}
		return Result{Route: RouteText, Verses: verses}
	}

	return Result{Route: RouteNone, Verses: []scripture.Verse{}}
}

func (e *Engine) preview(ctx context.Context, ref scripture.Reference) Result {
	verses := e.fetcher.FetchChapter(ctx, ref.Book, ref.Chapter)
	if limit := e.previewLimit(); len(verses) > limit {
		verses = verses[:limit]
	}
	return Result{Route: RouteReference, Reference: &ref, Verses: verses}
}

// filterVerses applies q's book and category filters. With no filters vs is returned as is.
func filterVerses(vs []scripture.Verse, q FreeText) []scripture.Verse {
	book := scripture.Normalize(q.BookFilter)
	category := scripture.Normalize(q.CategoryFilter)
	if book == "" && category == "" {
		return vs
	}

	var inCategory map[string]bool
	if category != "" {
		inCategory = make(map[string]bool)
		for _, b := range scripture.BooksInCategory(category) {
			inCategory[scripture.Normalize(b.Name)] = true
		}
	}

	out := []scripture.Verse{}
	for _, v := range vs {
		name := scripture.Normalize(v.Book)
		if book != "" && name != book {
			continue
		}
		if inCategory != nil && !inCategory[name] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// SearchInput contains parameters for the SearchVerses operation.
type SearchInput struct {
	Query    string // required
	Book     string // optional filter
	Category string // optional filter
}

// SearchOutput contains the result of the SearchVerses operation.
type SearchOutput struct {
	Query string `json:"query"`
	Result
	Count int `json:"count"`
}

// SearchVerses validates a user query and resolves it as FreeText.
func (e *Engine) SearchVerses(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	if utf8.RuneCountInString(query) > MaxQueryLength {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("query exceeds maximum length of %d characters", MaxQueryLength))
	}
	if c := strings.TrimSpace(input.Category); c != "" && len(scripture.BooksInCategory(c)) == 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown category %q", c))
	}

	res := e.Resolve(ctx, FreeText{Query: query, BookFilter: input.Book, CategoryFilter: input.Category})
	return &SearchOutput{Query: query, Result: res, Count: len(res.Verses)}, nil
}
