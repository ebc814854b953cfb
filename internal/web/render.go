package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/ops"
	"github.com/hpungsan/verso/internal/scripture"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "search", "books", "cache"
}

// SearchPageData is the template data for the search page.
type SearchPageData struct {
	PageData
	Query      string
	Book       string
	Category   string
	Categories []string
	HasQuery   bool
	Result     *ops.SearchOutput
	Daily      *ops.DailyOutput
}

// ChapterPageData is the template data for the chapter reader.
type ChapterPageData struct {
	PageData
	Chapter      *ops.ChapterOutput
	RenderedHTML template.HTML
	Prev         int // 0 when there is no previous chapter
	Next         int // 0 when there is no next chapter
}

// BooksPageData is the template data for the book catalog page.
type BooksPageData struct {
	PageData
	Category string
	Books    *ops.BooksOutput
}

// CachePageData is the template data for the cache inventory page.
type CachePageData struct {
	PageData
	Inventory *ops.InventoryOutput
	Message   string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string) *Renderer {
	funcMap := template.FuncMap{
		"verseRef":   verseRef,
		"chapterURL": chapterURL,
		"plural":     plural,
	}

	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"search":  "search.html",
		"chapter": "chapter.html",
		"books":   "books.html",
		"cache":   "cache.html",
		"error":   "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
	}
}

// page builds the shared PageData.
func (r *Renderer) page(title, nav string) PageData {
	return PageData{Title: title, Version: r.version, Nav: nav}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, req *http.Request, name string, data any) {
	r.renderPageStatus(w, req, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
// For HTMX requests, only the "content" block is rendered to avoid duplicating the layout.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	block := "layout"
	if req != nil && req.Header.Get("HX-Request") == "true" {
		block = "content"
	}
	r.renderBlock(w, req, status, name, block, data)
}

// renderBlock renders a specific named block from a page template.
// Used for htmx partial swaps that target a sub-section of the page.
func (r *Renderer) renderBlock(w http.ResponseWriter, req *http.Request, status int, page, block string, data any) {
	log := logging.Logger()
	if req != nil {
		log = logging.FromContext(req.Context())
	}

	t, ok := r.templates[page]
	if !ok {
		log.Error("template not found", "template", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, block, data); err != nil {
		log.Error("template execution failed", "template", page, "block", block, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
// /api/ paths and clients accepting JSON get the JSON error envelope.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	var vErr *errors.VersoError
	if !stderrors.As(err, &vErr) {
		vErr = errors.NewInternal(err)
	}

	status := vErr.Status
	message := vErr.Message
	if vErr.Code == errors.ErrInternal {
		logging.FromContext(req.Context()).Error("request failed", "error", err)
		message = "an internal error occurred"
	}

	if req.Header.Get("HX-Request") == "true" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintf(w, `<div class="error-message">%s</div>`, template.HTMLEscapeString(message))
		return
	}

	if strings.HasPrefix(req.URL.Path, "/api/") || strings.Contains(req.Header.Get("Accept"), "application/json") {
		renderJSON(w, status, map[string]any{
			"error": map[string]any{
				"code":    string(vErr.Code),
				"message": message,
				"status":  status,
			},
		})
		return
	}

	r.renderPageStatus(w, req, status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", status), ""),
		StatusCode: status,
		Message:    message,
	})
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
// Raw HTML in the input is not passed through.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// chapterMarkdown lays out a chapter as markdown: section titles become
// headings and each verse is a paragraph led by its bold number.
func chapterMarkdown(verses []scripture.Verse) string {
	var b strings.Builder
	for _, v := range verses {
		if v.Title != "" {
			fmt.Fprintf(&b, "### %s\n\n", v.Title)
		}
		fmt.Fprintf(&b, "**%d** %s\n\n", v.Verse, strings.TrimSpace(v.Text))
	}
	return b.String()
}

// verseRef formats "Juan 3:16".
func verseRef(v scripture.Verse) string {
	return fmt.Sprintf("%s %d:%d", v.Book, v.Chapter, v.Verse)
}

// chapterURL builds the reader path for a chapter.
func chapterURL(book string, chapter int) string {
	return "/chapter/" + url.PathEscape(book) + "/" + strconv.Itoa(chapter)
}

// plural picks the singular or plural form for n.
func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
