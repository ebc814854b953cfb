package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/scripture"
)

// ChapterInput contains parameters for the Chapter operation.
type ChapterInput struct {
	Book    string // required
	Chapter int    // required, >= 1
}

// ChapterOutput contains the result of the Chapter operation.
type ChapterOutput struct {
	Book    string            `json:"book"`
	Chapter int               `json:"chapter"`
	Source  string            `json:"source"`
	Verses  []scripture.Verse `json:"verses"`
}

// Chapter fetches a whole chapter. Unlike Resolve, it reports an empty outcome as NOT_FOUND.
// Book names outside the catalog are still attempted.
func (e *Engine) Chapter(ctx context.Context, input ChapterInput) (*ChapterOutput, error) {
	book := strings.TrimSpace(input.Book)
	if book == "" {
		return nil, errors.NewInvalidRequest("book is required")
	}
	if input.Chapter < 1 {
		return nil, errors.NewInvalidRequest("chapter must be >= 1")
	}
	if b, ok := scripture.LookupBook(book); ok {
		book = b.Name
	}

	ctx = logging.EnsureRequestID(ctx)
	res := e.fetcher.Fetch(ctx, book, input.Chapter)
	if len(res.Verses) == 0 {
		return nil, errors.NewNotFound(scripture.ChapterKey{Book: book, Chapter: input.Chapter}.String())
	}

	return &ChapterOutput{Book: book, Chapter: input.Chapter, Source: res.Source, Verses: res.Verses}, nil
}
