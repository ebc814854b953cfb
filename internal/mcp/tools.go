package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchToolDef = mcp.NewTool("verse_search",
	mcp.WithDescription("Resolve a Spanish scripture query. Accepts direct references (\"Juan 3:16\", \"1 Reyes 2\"), "+
		"topics (\"ansiedad\", \"perdón\") or free text matched against cached chapters."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Reference, topic or free text")),
	mcp.WithString("book", mcp.Description("Keep only verses from this book (topic and text results)")),
	mcp.WithString("category", mcp.Description("Keep only verses from this category or testament (topic and text results)")),
)

var chapterToolDef = mcp.NewTool("verse_chapter",
	mcp.WithDescription("Return every verse of one chapter, from cache, remote sources or the offline seed."),
	mcp.WithString("book", mcp.Required(), mcp.Description("Book name, e.g. \"Salmos\" or \"1 Corintios\"")),
	mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number, 1 or greater")),
)

var dailyToolDef = mcp.NewTool("verse_daily",
	mcp.WithDescription("Return the verse of the day. Deterministic per UTC calendar day."),
	mcp.WithString("date", mcp.Description("Date as YYYY-MM-DD (default: today)")),
)

var booksToolDef = mcp.NewTool("book_list",
	mcp.WithDescription("List canonical books with chapter counts, optionally filtered by category or testament."),
	mcp.WithString("category", mcp.Description("Category (e.g. \"Evangelios\") or testament (\"Antiguo Testamento\")")),
)

var inventoryToolDef = mcp.NewTool("cache_inventory",
	mcp.WithDescription("List chapters stored in the local cache under the current schema."),
)

var purgeToolDef = mcp.NewTool("cache_purge",
	mcp.WithDescription("Remove every cached chapter, including entries from older schema versions."),
)

var warmToolDef = mcp.NewTool("cache_warm",
	mcp.WithDescription("Fetch and cache every chapter of a book so it is available offline."),
	mcp.WithString("book", mcp.Required(), mcp.Description("Book name")),
)
