package fetch

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/scripture"
)

// Retriever loads the raw body at a location.
type Retriever interface {
	Retrieve(ctx context.Context, location string) ([]byte, error)
}

// Source is one ordered candidate origin for chapter files.
type Source struct {
	Name string
	// Network sources are skipped while offline.
	Network   bool
	Base      string
	Pattern   string
	Retriever Retriever
}

// Usable reports whether the source can produce candidates at all.
// Network sources need a base; every source needs a retriever.
func (s Source) Usable() bool {
	if s.Retriever == nil || s.Pattern == "" {
		return false
	}
	return !s.Network || s.Base != ""
}

// Location expands the pattern for a path variation and chapter.
// Network locations are absolute URLs; bundle locations are slash paths relative to the bundle root.
func (s Source) Location(v scripture.PathVariation, chapter int) string {
	folder, file := v.Folder, v.File
	if s.Network {
		folder, file = url.PathEscape(folder), url.PathEscape(file)
	}
	path := strings.NewReplacer(
		"{folder}", folder,
		"{file}", file,
		"{chapter}", strconv.Itoa(chapter),
	).Replace(s.Pattern)

	if !s.Network {
		return strings.TrimLeft(path, "/")
	}
	return strings.TrimRight(s.Base, "/") + "/" + strings.TrimLeft(path, "/")
}

// SourcesFromConfig builds the ordered source list described by cfg.
// HTTP sources share one retriever so the rate limit applies across them.
// Bundle sources read from cfg's bundle directory resolved against baseDir.
func SourcesFromConfig(cfg *config.Config, baseDir string, client *http.Client) []Source {
	httpRetriever := NewHTTPRetriever(client, cfg.RequestsPerSecond)

	var sources []Source
	for _, sc := range cfg.SourceList() {
		switch sc.Kind {
		case config.SourceKindHTTP:
			sources = append(sources, Source{
				Name:      sc.Name,
				Network:   true,
				Base:      sc.Base,
				Pattern:   sc.Pattern,
				Retriever: httpRetriever,
			})
		case config.SourceKindBundle:
			dir := config.ResolvePath(baseDir, sc.Base)
			if dir == "" {
				continue
			}
			sources = append(sources, Source{
				Name:      sc.Name,
				Base:      dir,
				Pattern:   sc.Pattern,
				Retriever: NewBundleRetriever(os.DirFS(dir)),
			})
		}
	}
	return sources
}
