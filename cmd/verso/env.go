package main

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/db"
	"github.com/hpungsan/verso/internal/fetch"
	"github.com/hpungsan/verso/internal/ops"
	"github.com/hpungsan/verso/internal/storage"
)

// appEnv carries what commands need. The engine is opened lazily so
// --help and --version never touch the database.
type appEnv struct {
	baseDir string
	cfg     *config.Config
	engine  *ops.Engine
	db      *sql.DB
}

// open builds the engine. offline forces network sources off; ephemeral
// keeps the cache in memory instead of baseDir/verso.db.
func (e *appEnv) open(offline, ephemeral bool) error {
	if e.engine != nil {
		return nil
	}
	if offline {
		e.cfg.Offline = true
	}

	var port storage.Port
	if ephemeral {
		port = storage.NewMemory()
	} else {
		database, err := db.Init(e.baseDir)
		if err != nil {
			return err
		}
		db.ConfigurePool(database, e.cfg)
		e.db = database
		port = db.NewKVStore(database)
	}

	sources := fetch.SourcesFromConfig(e.cfg, e.baseDir, &http.Client{})
	conn := fetch.ConnectivityFor(e.cfg.Offline, e.cfg.ConnectivityProbe)
	e.engine = ops.New(port, e.cfg, sources, conn)
	return nil
}

// close releases the database, if one was opened.
func (e *appEnv) close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db = nil
	return err
}

// bundleDir is the resolved local bundle directory, empty when unset.
func (e *appEnv) bundleDir() string {
	return e.cfg.ResolveBundleDir(e.baseDir)
}

// exportsDir is the only directory cache exports are written to and read from.
func (e *appEnv) exportsDir() string {
	return filepath.Join(e.baseDir, "exports")
}

// exportPath places a bare file name inside exportsDir. Anything else is
// returned as given and left to path validation.
func (e *appEnv) exportPath(p string) string {
	if p == "" || strings.ContainsAny(p, `/\`) {
		return p
	}
	return filepath.Join(e.exportsDir(), p)
}
