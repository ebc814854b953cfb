package ops

import (
	"fmt"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

// BooksOutput contains the result of the Books operation.
type BooksOutput struct {
	Category   string           `json:"category,omitempty"`
	Books      []scripture.Book `json:"books"`
	Count      int              `json:"count"`
	Categories []string         `json:"categories"`
}

// Books lists the catalog, optionally restricted to a category or testament.
func (e *Engine) Books(category string) (*BooksOutput, error) {
	category = strings.TrimSpace(category)
	books := scripture.BooksInCategory(category)
	if len(books) == 0 {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown category %q", category))
	}
	return &BooksOutput{
		Category:   category,
		Books:      books,
		Count:      len(books),
		Categories: scripture.Categories(),
	}, nil
}
