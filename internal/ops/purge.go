package ops

import (
	"context"
	"fmt"
)

// PurgeOutput contains the result of the CachePurge operation.
type PurgeOutput struct {
	Purged  int    `json:"purged"`
	Message string `json:"message"`
}

// CachePurge removes every cached chapter, including entries from older schema versions.
func (e *Engine) CachePurge(ctx context.Context) (*PurgeOutput, error) {
	count, err := e.cache.Purge(ctx)
	if err != nil {
		return nil, err
	}
	return &PurgeOutput{Purged: count, Message: formatPurgeMessage(count)}, nil
}

// formatPurgeMessage creates a human-readable message for the purge result.
func formatPurgeMessage(count int) string {
	if count == 0 {
		return "No cached chapters to purge"
	}
	chapterWord := "chapter"
	if count > 1 {
		chapterWord = "chapters"
	}
	return fmt.Sprintf("Removed %d cached %s", count, chapterWord)
}
