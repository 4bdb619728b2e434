package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/db"
	"github.com/hpungsan/numwords/internal/logging"
	"github.com/hpungsan/numwords/internal/mcp"
	"github.com/hpungsan/numwords/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// baseDirName is the per-user directory under $HOME.
const baseDirName = ".numwords"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"convert": true, "serve": true,
	"history": true, "show": true, "purge": true, "export": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _ __  _   _ _ __ ___  __      _____  _ __ __| |___
  | '_ \| | | | '_ ' _ \ \ \ /\ / / _ \| '__/ _' / __|
  | | | | |_| | | | | | | \ V  V / (_) | | | (_| \__ \
  |_| |_|\__,_|_| |_| |_|  \_/\_/ \___/|_|  \__,_|___/

  Spoken number words to numerals

  Usage: numwords <command> [options]
         numwords convert twelve ninety nine east thirty fourth street
         numwords --help

  MCP server mode requires piped input.`)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil, nil, nil, nil)
		if err := app.Run(os.Args); err != nil {
			fatalf("%v", err)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if !isCLIMode() && len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'numwords --help' for usage.\n")
		os.Exit(1)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatalf("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, baseDirName)

	cwd, err := os.Getwd()
	if err != nil {
		cwd = baseDir
	}
	cfg, err := config.LoadWithRepo(baseDir, cwd)
	if err != nil {
		fatalf("failed to load config: %v", err)
	}

	logDir := cfg.LogDir
	if logDir == "" {
		logDir = baseDir
	}
	logger, logCloser, err := logging.New(cfg.LogLevel, logDir)
	if err != nil {
		fatalf("failed to open log: %v", err)
	}
	defer logCloser.Close()

	database, err := db.Init(baseDir)
	if err != nil {
		fatalf("failed to initialize database: %v", err)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	if out, err := ops.ApplyRetention(context.Background(), database, cfg); err != nil {
		logger.Error("history retention failed", slog.Any("error", err))
	} else if out.Purged > 0 {
		logger.Info("history retention applied", slog.Int("purged", out.Purged))
	}

	warnUnknown(logger, "disabled_tools", mcp.ValidateDisabledTools(cfg.DisabledTools))
	warnUnknown(logger, "disabled_types", mcp.ValidateDisabledTypes(cfg.DisabledTypes))

	memo := ops.NewMemoFromConfig(cfg)

	if isCLIMode() {
		app := newCLIApp(database, cfg, memo, logger)
		if err := app.Run(os.Args); err != nil {
			// deferred closers do not run after os.Exit
			database.Close()
			logCloser.Close()
			fatalf("%v", err)
		}
		return
	}

	// MCP server mode (default)
	logger.Info("mcp server starting", slog.String("version", Version))
	if err := mcp.Run(database, cfg, memo, Version); err != nil {
		logger.Error("mcp server stopped", slog.Any("error", err))
		database.Close()
		logCloser.Close()
		fatalf("%v", err)
	}
}

// warnUnknown reports config entries that name no known tool or type.
func warnUnknown(logger *slog.Logger, field string, unknown []string) {
	if len(unknown) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "warning: unknown %s in config: %s\n", field, strings.Join(unknown, ", "))
	logger.Warn("unknown config entries", slog.String("field", field), slog.Any("names", unknown))
}
