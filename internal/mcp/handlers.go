package mcp

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	engine *ops.Engine
	cfg    *config.Config
	now    func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *ops.Engine, cfg *config.Config) *Handlers {
	return &Handlers{engine: engine, cfg: cfg, now: time.Now}
}

// Request types for each tool

// SearchRequest represents the arguments for verse_search.
type SearchRequest struct {
	Query    string `json:"query"`
	Book     string `json:"book,omitempty"`
	Category string `json:"category,omitempty"`
}

// ChapterRequest represents the arguments for verse_chapter.
type ChapterRequest struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
}

// DailyRequest represents the arguments for verse_daily.
type DailyRequest struct {
	Date string `json:"date,omitempty"`
}

// BooksRequest represents the arguments for book_list.
type BooksRequest struct {
	Category string `json:"category,omitempty"`
}

// WarmRequest represents the arguments for cache_warm.
type WarmRequest struct {
	Book string `json:"book"`
}

// HandleSearch handles the verse_search tool.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	ctx = logging.EnsureRequestID(ctx)
	result, err := h.engine.SearchVerses(ctx, ops.SearchInput{
		Query:    input.Query,
		Book:     input.Book,
		Category: input.Category,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleChapter handles the verse_chapter tool.
func (h *Handlers) HandleChapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ChapterRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	ctx = logging.EnsureRequestID(ctx)
	result, err := h.engine.Chapter(ctx, ops.ChapterInput{
		Book:    input.Book,
		Chapter: input.Chapter,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDaily handles the verse_daily tool.
func (h *Handlers) HandleDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DailyRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	day, err := ops.ParseDay(input.Date, h.now())
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(h.engine.Daily(day))
}

// HandleBooks handles the book_list tool.
func (h *Handlers) HandleBooks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[BooksRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := h.engine.Books(input.Category)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCacheInventory handles the cache_inventory tool.
func (h *Handlers) HandleCacheInventory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.engine.CacheInventory(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCachePurge handles the cache_purge tool.
func (h *Handlers) HandleCachePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.engine.CachePurge(ctx)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCacheWarm handles the cache_warm tool.
func (h *Handlers) HandleCacheWarm(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WarmRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	ctx = logging.EnsureRequestID(ctx)
	result, err := h.engine.Warm(ctx, ops.WarmInput{Book: input.Book})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// INTERNAL details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var vErr *errors.VersoError
	if stderrors.As(err, &vErr) {
		errorObj := map[string]any{
			"code":    vErr.Code,
			"message": err.Error(),
			"status":  vErr.Status,
		}
		if vErr.Code != errors.ErrInternal && vErr.Details != nil {
			errorObj["details"] = vErr.Details
		}
		if vErr.Code == errors.ErrInternal {
			errorObj["message"] = "an internal error occurred"
		} else if err == error(vErr) {
			errorObj["message"] = vErr.Message
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
