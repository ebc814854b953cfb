package ops

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/scripture"
)

// ExportFormatVersion identifies the JSONL layout written by CacheExport.
const ExportFormatVersion = "1"

// ExportInput contains parameters for the CacheExport operation.
type ExportInput struct {
	Dir  string // required: the only directory exports may be written to
	Path string // optional, default: <Dir>/verso-cache-<schema>-<timestamp>.jsonl
}

// ExportOutput contains the result of the CacheExport operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// ExportHeader is the first line of an export file.
type ExportHeader struct {
	VersoExport   bool   `json:"_verso_export"`
	FormatVersion string `json:"format_version"`
	CacheSchema   string `json:"cache_schema"`
	ExportedAt    int64  `json:"exported_at"`
}

// ExportRecord is one cached chapter in an export file.
type ExportRecord struct {
	Book    string            `json:"book"`
	Chapter int               `json:"chapter"`
	Verses  []scripture.Verse `json:"verses"`
}

// CacheExport writes every chapter cached under the current schema to a JSONL file,
// so a cache warmed on one machine can be carried to another.
func (e *Engine) CacheExport(ctx context.Context, input ExportInput) (*ExportOutput, error) {
	now := time.Now()

	exportPath := input.Path
	if exportPath == "" {
		name := fmt.Sprintf("verso-cache-%s-%s.jsonl",
			SanitizeForFilename(e.cfg.CacheSchemaVersion), now.Format("2006-01-02T150405"))
		exportPath = filepath.Join(input.Dir, name)
	}

	if err := os.MkdirAll(input.Dir, 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}
	if err := ValidatePath(exportPath, PathCheckWrite, input.Dir); err != nil {
		return nil, err
	}

	entries, err := e.cache.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	// Write to a temp file and rename so an existing export survives a failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)

	header := ExportHeader{
		VersoExport:   true,
		FormatVersion: ExportFormatVersion,
		CacheSchema:   e.cfg.CacheSchemaVersion,
		ExportedAt:    now.Unix(),
	}
	if err := enc.Encode(header); err != nil {
		return nil, errors.NewInternal(err)
	}

	count := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewUnavailable("export", err)
		}

		verses, ok := e.cache.Get(ctx, entry.Book, entry.Chapter)
		if !ok {
			// Evicted between listing and reading.
			continue
		}
		if err := enc.Encode(ExportRecord{Book: entry.Book, Chapter: entry.Chapter, Verses: verses}); err != nil {
			return nil, errors.NewInternal(err)
		}
		count++
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlinked destination.
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("export path is a symlink")
	}

	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; choose a new path or delete the existing file")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{Path: exportPath, Count: count, ExportedAt: now.Unix()}, nil
}
