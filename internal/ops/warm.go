package ops

import (
	"context"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/fetch"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/scripture"
)

// WarmInput contains parameters for the Warm operation.
type WarmInput struct {
	Book string // required, catalog book
}

// WarmOutput contains the result of the Warm operation.
type WarmOutput struct {
	Book     string `json:"book"`
	Chapters int    `json:"chapters"`
	Fetched  int    `json:"fetched"`
	Cached   int    `json:"already_cached"`
	Missing  []int  `json:"missing"`
}

// Warm fetches every chapter of a catalog book, one at a time, so it is served from
// the cache afterwards. Chapters only available from the seed count as missing.
func (e *Engine) Warm(ctx context.Context, input WarmInput) (*WarmOutput, error) {
	name := strings.TrimSpace(input.Book)
	if name == "" {
		return nil, errors.NewInvalidRequest("book is required")
	}
	book, ok := scripture.LookupBook(name)
	if !ok {
		return nil, errors.NewNotFound(name)
	}

	ctx = logging.EnsureRequestID(ctx)
	log := logging.FromContext(ctx).With("book", book.Name)

	out := &WarmOutput{Book: book.Name, Chapters: book.Chapters, Missing: []int{}}
	for ch := 1; ch <= book.Chapters; ch++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewUnavailable(book.Name, err)
		}
		res := e.fetcher.Fetch(ctx, book.Name, ch)
		switch res.Source {
		case fetch.TierCache:
			out.Cached++
		case fetch.TierSeed, fetch.TierNone:
			out.Missing = append(out.Missing, ch)
		default:
			out.Fetched++
		}
	}

	log.Info("warm complete", "fetched", out.Fetched, "already_cached", out.Cached, "missing", len(out.Missing))
	return out, nil
}
