package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/verso/internal/config"
	"github.com/hpungsan/verso/internal/logging"
	"github.com/hpungsan/verso/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"search": true, "chapter": true, "daily": true, "books": true,
	"cache": true, "serve": true,
	"help": true, "h": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
// Global flags (--offline, --ephemeral) may precede the subcommand.
func isCLIMode() bool {
	for _, arg := range os.Args[1:] {
		if isHelpArg(arg) || arg == "--version" || arg == "-v" {
			return true
		}
		if strings.HasPrefix(arg, "-") {
			continue
		}
		return cliCommands[arg]
	}
	return false // No subcommand → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return isHelpArg(arg) || arg == "--version" || arg == "-v"
}

func isHelpArg(arg string) bool {
	return arg == "--help" || arg == "-h" || arg == "help" || arg == "h"
}

// hasArg reports whether flag appears verbatim in os.Args.
func hasArg(flag string) bool {
	for _, arg := range os.Args[1:] {
		if arg == flag {
			return true
		}
	}
	return false
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  __   _____ ___  ___  ___
  \ \ / / __| _ \/ __|/ _ \
   \ V /| _||   /\__ \ (_) |
    \_/ |___|_|_\|___/\___/

  Referencias bíblicas en español, con caché sin conexión

  Usage: verso <command> [options]
         verso --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any storage is opened
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	baseDir := filepath.Join(homeDir, ".verso")

	wd, _ := os.Getwd()
	cfg, err := config.LoadWithRepo(baseDir, wd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays clean for JSON and MCP stdio.
	log := logging.Init(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		log.Warn("unknown tools in disabled_tools", "tools", unknown)
	}
	if unknown := mcp.ValidateDisabledTypes(cfg.DisabledTypes); len(unknown) > 0 {
		log.Warn("unknown types in disabled_types", "types", unknown)
	}

	env := &appEnv{baseDir: baseDir, cfg: cfg}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'verso --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := env.open(hasArg("--offline"), hasArg("--ephemeral")); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize storage: %v\n", err)
		os.Exit(1)
	}
	defer env.close()

	if err := mcp.Run(env.engine, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		env.close()
		os.Exit(1)
	}
}
