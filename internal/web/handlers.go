package web

import (
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/ops"
	"github.com/hpungsan/verso/internal/scripture"
)

// Handlers contains HTTP route handlers for the web UI and JSON API.
type Handlers struct {
	engine   *ops.Engine
	cfg      *config.Config
	renderer *Renderer
	now      func() time.Time
}

// HandleSearch resolves the query in q and renders the results page for GET /search.
// With no query it shows the verse of the day.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := SearchPageData{
		PageData:   h.renderer.page("Buscar", "search"),
		Query:      q.Get("q"),
		Book:       q.Get("book"),
		Category:   q.Get("category"),
		Categories: scripture.Categories(),
	}
	data.HasQuery = strings.TrimSpace(data.Query) != ""

	if !data.HasQuery {
		daily := h.engine.Daily(h.now())
		data.Daily = &daily
		if r.Header.Get("HX-Target") == "results" {
			h.renderer.renderBlock(w, r, http.StatusOK, "search", "search-results", data)
			return
		}
		h.renderer.renderPage(w, r, "search", data)
		return
	}

	result, err := h.engine.SearchVerses(r.Context(), ops.SearchInput{
		Query:    data.Query,
		Book:     data.Book,
		Category: data.Category,
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	data.Result = result

	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, r, http.StatusOK, "search", "search-results", data)
		return
	}
	h.renderer.renderPage(w, r, "search", data)
}

// HandleChapter renders the chapter reader for GET /chapter/{book}/{chapter}.
func (h *Handlers) HandleChapter(w http.ResponseWriter, r *http.Request) {
	input, err := chapterInput(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := h.engine.Chapter(r.Context(), input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := ChapterPageData{
		PageData:     h.renderer.page(scripture.ChapterKey{Book: result.Book, Chapter: result.Chapter}.String(), "books"),
		Chapter:      result,
		RenderedHTML: renderMarkdown(chapterMarkdown(result.Verses)),
	}
	if result.Chapter > 1 {
		data.Prev = result.Chapter - 1
	}
	if b, ok := scripture.LookupBook(result.Book); ok && result.Chapter < b.Chapters {
		data.Next = result.Chapter + 1
	}

	h.renderer.renderPage(w, r, "chapter", data)
}

// HandleBooks renders the book catalog, optionally filtered by category.
func (h *Handlers) HandleBooks(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	result, err := h.engine.Books(category)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "books", BooksPageData{
		PageData: h.renderer.page("Libros", "books"),
		Category: category,
		Books:    result,
	})
}

// HandleCache lists cached chapters.
func (h *Handlers) HandleCache(w http.ResponseWriter, r *http.Request) {
	result, err := h.engine.CacheInventory(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "cache", CachePageData{
		PageData:  h.renderer.page("Caché", "cache"),
		Inventory: result,
		Message:   r.URL.Query().Get("message"),
	})
}

// HandlePurge removes every cached chapter. The form must carry confirm=true.
func (h *Handlers) HandlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	if r.FormValue("confirm") != "true" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("confirm parameter must be \"true\""))
		return
	}

	result, err := h.engine.CachePurge(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.respondAction(w, r, result.Message, result)
}

// HandleWarm fetches and caches every chapter of the book named in the form.
func (h *Handlers) HandleWarm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	result, err := h.engine.Warm(r.Context(), ops.WarmInput{Book: r.FormValue("book")})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	msg := result.Book + ": " + strconv.Itoa(result.Fetched) + " " + plural(result.Fetched, "capítulo descargado", "capítulos descargados")
	if len(result.Missing) > 0 {
		msg += ", " + strconv.Itoa(len(result.Missing)) + " sin fuente"
	}
	h.respondAction(w, r, msg, result)
}

// respondAction answers a cache mutation: an HTML fragment for htmx,
// JSON when asked for, otherwise a redirect back to the cache page.
func (h *Handlers) respondAction(w http.ResponseWriter, r *http.Request, message string, result any) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="action-result">` + template.HTMLEscapeString(message) + `</div>`))
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		renderJSON(w, http.StatusOK, result)
		return
	}

	http.Redirect(w, r, "/cache?message="+url.QueryEscape(message), http.StatusFound)
}

// HandleAPISearch is the JSON form of HandleSearch.
func (h *Handlers) HandleAPISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.engine.SearchVerses(r.Context(), ops.SearchInput{
		Query:    q.Get("q"),
		Book:     q.Get("book"),
		Category: q.Get("category"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIChapter returns a chapter as JSON.
func (h *Handlers) HandleAPIChapter(w http.ResponseWriter, r *http.Request) {
	input, err := chapterInput(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := h.engine.Chapter(r.Context(), input)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, result)
}

// HandleAPIDaily returns the verse of the day for date, or today, as JSON.
func (h *Handlers) HandleAPIDaily(w http.ResponseWriter, r *http.Request) {
	day, err := ops.ParseDay(r.URL.Query().Get("date"), h.now())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, h.engine.Daily(day))
}

// chapterInput reads the {book} and {chapter} path values.
func chapterInput(r *http.Request) (ops.ChapterInput, error) {
	chapter, err := strconv.Atoi(r.PathValue("chapter"))
	if err != nil {
		return ops.ChapterInput{}, errors.NewInvalidRequest("chapter must be an integer")
	}
	return ops.ChapterInput{Book: r.PathValue("book"), Chapter: chapter}, nil
}
