package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/ops"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options controls where the web server listens and what it exposes.
type Options struct {
	Version string
	Bind    string
	Port    int

	// BundleDir, when non-empty, is served read-only under /bundle/ so this
	// machine can act as another's primary host.
	BundleDir string
}

// NewServer creates and configures the HTTP server for the Verso web UI and JSON API.
func NewServer(engine *ops.Engine, cfg *config.Config, opts Options) *http.Server {
	h := &Handlers{
		engine:   engine,
		cfg:      cfg,
		renderer: NewRenderer(mustSub(templateFS, "templates"), opts.Version),
		now:      time.Now,
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Bind, opts.Port),
		Handler:           newMux(h, opts.BundleDir),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// newMux registers all routes and wraps them with request logging and security headers.
func newMux(h *Handlers, bundleDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/search", http.StatusFound)
	})
	mux.HandleFunc("GET /search", h.HandleSearch)
	mux.HandleFunc("GET /chapter/{book}/{chapter}", h.HandleChapter)
	mux.HandleFunc("GET /books", h.HandleBooks)
	mux.HandleFunc("GET /cache", h.HandleCache)
	mux.HandleFunc("POST /cache/purge", h.HandlePurge)
	mux.HandleFunc("POST /cache/warm", h.HandleWarm)

	mux.HandleFunc("GET /api/search", h.HandleAPISearch)
	mux.HandleFunc("GET /api/chapter/{book}/{chapter}", h.HandleAPIChapter)
	mux.HandleFunc("GET /api/daily", h.HandleAPIDaily)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(mustSub(staticFS, "static"))))
	if bundleDir != "" {
		mux.Handle("GET /bundle/", http.StripPrefix("/bundle/", http.FileServerFS(os.DirFS(bundleDir))))
	}

	return logging.Middleware(securityHeaders(mux))
}

// mustSub strips an embedded directory prefix. Embedded paths are fixed at
// build time, so a failure here is a programming error.
func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(fmt.Sprintf("embedded %s: %v", dir, err))
	}
	return sub
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log := logging.Logger()
	log.Info("verso web running", "url", "http://"+srv.Addr)

	if strings.HasPrefix(srv.Addr, "0.0.0.0") || strings.HasPrefix(srv.Addr, "::") || strings.HasPrefix(srv.Addr, ":") {
		log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
