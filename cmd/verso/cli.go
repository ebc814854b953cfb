package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/verso/internal/errors"
	"github.com/hpungsan/verso/internal/ops"
	"github.com/hpungsan/verso/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "verso",
		Usage:   "Spanish scripture reference lookup with offline cache",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "offline", Usage: "Skip network sources (cache, bundle and seed only)"},
			&cli.BoolFlag{Name: "ephemeral", Usage: "Keep the cache in memory for this run only"},
		},
		Before: func(c *cli.Context) error {
			if env == nil || c.Args().Len() == 0 || isHelpArg(c.Args().First()) {
				return nil
			}
			if err := env.open(c.Bool("offline"), c.Bool("ephemeral")); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
		After: func(*cli.Context) error {
			if env == nil {
				return nil
			}
			return env.close()
		},
		Commands: []*cli.Command{
			searchCmd(env),
			chapterCmd(env),
			dailyCmd(env),
			booksCmd(env),
			cacheCmd(env),
			serveCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// searchCmd creates the search command.
func searchCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Resolve a reference, topic or free-text query",
		ArgsUsage: "<query...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "book", Aliases: []string{"b"}, Usage: "Keep only verses from this book"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Keep only verses from this category or testament"},
		},
		Action: func(c *cli.Context) error {
			output, err := env.engine.SearchVerses(c.Context, ops.SearchInput{
				Query:    strings.Join(c.Args().Slice(), " "),
				Book:     c.String("book"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// chapterCmd creates the chapter command.
func chapterCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:      "chapter",
		Usage:     "Print every verse of a chapter",
		ArgsUsage: "<book...> <chapter>",
		Action: func(c *cli.Context) error {
			input, err := parseChapterArgs(c.Args().Slice())
			if err != nil {
				return outputError(err)
			}
			output, err := env.engine.Chapter(c.Context, input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// dailyCmd creates the daily command.
func dailyCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "daily",
		Usage: "Print the verse of the day",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date as YYYY-MM-DD (default: today)"},
		},
		Action: func(c *cli.Context) error {
			day, err := ops.ParseDay(c.String("date"), time.Now())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(env.engine.Daily(day))
		},
	}
}

// booksCmd creates the books command.
func booksCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "books",
		Usage: "List canonical books",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Category or testament"},
		},
		Action: func(c *cli.Context) error {
			output, err := env.engine.Books(c.String("category"))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// cacheCmd groups the cache maintenance subcommands.
func cacheCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and maintain the chapter cache",
		Subcommands: []*cli.Command{
			{
				Name:  "inventory",
				Usage: "List cached chapters",
				Action: func(c *cli.Context) error {
					output, err := env.engine.CacheInventory(c.Context)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "purge",
				Usage: "Remove every cached chapter",
				Action: func(c *cli.Context) error {
					output, err := env.engine.CachePurge(c.Context)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "export",
				Usage: "Write cached chapters to a JSONL file in ~/.verso/exports",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Usage: "Export file (default: generated name in the exports directory)"},
				},
				Action: func(c *cli.Context) error {
					output, err := env.engine.CacheExport(c.Context, ops.ExportInput{
						Dir:  env.exportsDir(),
						Path: env.exportPath(c.String("path")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "import",
				Usage:     "Load chapters from a JSONL export in ~/.verso/exports",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: string(ops.ImportModeSkip), Usage: "When a chapter is already cached: skip|replace"},
				},
				Action: func(c *cli.Context) error {
					output, err := env.engine.CacheImport(c.Context, ops.ImportInput{
						Dir:  env.exportsDir(),
						Path: env.exportPath(c.Args().First()),
						Mode: ops.ImportMode(c.String("mode")),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "warm",
				Usage:     "Fetch and cache every chapter of a book",
				ArgsUsage: "<book...>",
				Action: func(c *cli.Context) error {
					output, err := env.engine.Warm(c.Context, ops.WarmInput{Book: strings.Join(c.Args().Slice(), " ")})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web UI and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8722, Usage: "Port to listen on"},
			&cli.BoolFlag{Name: "no-bundle", Usage: "Do not serve the local bundle under /bundle/"},
		},
		Action: func(c *cli.Context) error {
			opts := web.Options{
				Version: Version,
				Bind:    c.String("bind"),
				Port:    c.Int("port"),
			}
			if !c.Bool("no-bundle") {
				if dir := env.bundleDir(); dirExists(dir) {
					opts.BundleDir = dir
				}
			}
			if err := web.Run(web.NewServer(env.engine, env.cfg, opts)); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI as "[CODE] message".
func outputError(err error) error {
	var vErr *errors.VersoError
	if stderrors.As(err, &vErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", vErr.Code, vErr.Message), 1)
	}
	return cli.Exit(fmt.Sprintf("[%s] %s", errors.ErrInternal, err.Error()), 1)
}

// parseChapterArgs splits "1 Reyes 2" into book "1 Reyes" and chapter 2.
// The chapter is always the last argument.
func parseChapterArgs(args []string) (ops.ChapterInput, error) {
	if len(args) < 2 {
		return ops.ChapterInput{}, errors.NewInvalidRequest("usage: verso chapter <book> <chapter>")
	}
	last := args[len(args)-1]
	chapter, err := strconv.Atoi(last)
	if err != nil {
		return ops.ChapterInput{}, errors.NewInvalidRequest(fmt.Sprintf("chapter must be an integer, got %q", last))
	}
	return ops.ChapterInput{Book: strings.Join(args[:len(args)-1], " "), Chapter: chapter}, nil
}

// dirExists reports whether path is an existing directory.
func dirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
