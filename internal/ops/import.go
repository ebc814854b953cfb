package ops

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

// ImportMode controls what happens when an imported chapter is already cached.
type ImportMode string

const (
	ImportModeSkip    ImportMode = "skip"    // keep the cached chapter
	ImportModeReplace ImportMode = "replace" // overwrite with the imported one
)

// maxImportLine bounds one JSONL record; the longest chapters are well under it.
const maxImportLine = 4 << 20

// ImportInput contains parameters for the CacheImport operation.
type ImportInput struct {
	Dir  string     // required: the only directory imports may be read from
	Path string     // required
	Mode ImportMode // default: skip
}

// ImportOutput contains the result of the CacheImport operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes a line that could not be imported.
type ImportError struct {
	Line    int    `json:"line"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CacheImport loads chapters from a CacheExport file into the current cache schema.
// Bad lines are reported and skipped; they do not abort the import.
func (e *Engine) CacheImport(ctx context.Context, input ImportInput) (*ImportOutput, error) {
	if input.Mode == "" {
		input.Mode = ImportModeSkip
	}
	if input.Mode != ImportModeSkip && input.Mode != ImportModeReplace {
		return nil, errors.NewInvalidRequest("mode must be one of: skip, replace")
	}
	if err := ValidatePath(input.Path, PathCheckRead, input.Dir); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if errors.CodeOf(err) != errors.ErrInternal {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	return e.importRecords(ctx, file, input.Mode)
}

func (e *Engine) importRecords(ctx context.Context, r io.Reader, mode ImportMode) (*ImportOutput, error) {
	out := &ImportOutput{Errors: []ImportError{}}
	fail := func(line int, code, msg string) {
		out.Errors = append(out.Errors, ImportError{Line: line, Code: code, Message: msg})
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxImportLine)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			return nil, errors.NewUnavailable("import", err)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var probe struct {
			VersoExport bool `json:"_verso_export"`
		}
		if err := json.Unmarshal([]byte(line), &probe); err != nil {
			fail(lineNum, "PARSE_ERROR", fmt.Sprintf("invalid JSON: %v", err))
			continue
		}
		if probe.VersoExport {
			continue
		}

		var record ExportRecord
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			fail(lineNum, "PARSE_ERROR", fmt.Sprintf("invalid record: %v", err))
			continue
		}
		if msg := validateRecord(record); msg != "" {
			fail(lineNum, "INVALID_RECORD", msg)
			continue
		}

		book := record.Book
		if b, ok := scripture.LookupBook(book); ok {
			book = b.Name
		}

		if mode == ImportModeSkip {
			if _, ok := e.cache.Get(ctx, book, record.Chapter); ok {
				out.Skipped++
				continue
			}
		}

		verses := scripture.CloneVerses(record.Verses)
		for i := range verses {
			verses[i].Book = book
			verses[i].Chapter = record.Chapter
		}
		if err := e.cache.Put(ctx, book, record.Chapter, verses); err != nil {
			fail(lineNum, string(errors.CodeOf(err)), err.Error())
			continue
		}
		out.Imported++
	}

	if err := scanner.Err(); err != nil {
		fail(lineNum+1, "READ_ERROR", fmt.Sprintf("failed to read file: %v", err))
	}

	return out, nil
}

// validateRecord returns a reason the record cannot be cached, or "".
func validateRecord(r ExportRecord) string {
	switch {
	case strings.TrimSpace(r.Book) == "":
		return "missing book"
	case r.Chapter < 1:
		return "chapter must be >= 1"
	case len(r.Verses) == 0:
		return "no verses"
	}
	for _, v := range r.Verses {
		if v.Verse < 1 || strings.TrimSpace(v.Text) == "" {
			return fmt.Sprintf("invalid verse %d", v.Verse)
		}
	}
	return ""
}
