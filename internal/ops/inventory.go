package ops

import (
	"context"

	"github.com/hpungsan/verso/internal/cache"
)

// InventoryOutput contains the result of the CacheInventory operation.
type InventoryOutput struct {
	Items  []cache.Entry `json:"items"`
	Total  int           `json:"total"`
	Schema string        `json:"schema"`
}

// CacheInventory lists the chapters cached under the current schema.
func (e *Engine) CacheInventory(ctx context.Context) (*InventoryOutput, error) {
	items, err := e.cache.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	return &InventoryOutput{Items: items, Total: len(items), Schema: e.cfg.CacheSchemaVersion}, nil
}
