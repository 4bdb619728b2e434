package main

import (
	"bufio"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/numwords/internal/config"
	"github.com/hpungsan/numwords/internal/conversion"
	"github.com/hpungsan/numwords/internal/errors"
	"github.com/hpungsan/numwords/internal/ops"
	"github.com/hpungsan/numwords/internal/web"
)

// defaultMaxLineBytes bounds a stdin line when max_input_chars is unlimited.
const defaultMaxLineBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, memo *ops.Memo, logger *slog.Logger) *cli.App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	app := &cli.App{
		Name:    "numwords",
		Usage:   "Rewrite spoken-English number words as numerals",
		Version: Version,
		Commands: []*cli.Command{
			convertCmd(db, cfg, memo),
			serveCmd(db, cfg, memo, logger),
			historyCmd(db),
			showCmd(db),
			purgeCmd(db),
			exportCmd(db),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// convertCmd creates the convert command.
func convertCmd(db *sql.DB, cfg *config.Config, memo *ops.Memo) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert number words in text (reads stdin line by line when no text is given)",
		ArgsUsage: "[text...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "explain", Aliases: []string{"e"}, Usage: "Show each phrase and its numeral"},
			&cli.BoolFlag{Name: "no-history", Usage: "Do not record the conversion"},
			&cli.BoolFlag{Name: "json", Usage: "Print results as JSON"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ConvertInput{
				Source:    conversion.SourceCLI,
				Explain:   c.Bool("explain"),
				NoHistory: c.Bool("no-history"),
			}
			w := c.App.Writer

			if c.NArg() > 0 {
				input.Text = strings.Join(c.Args().Slice(), " ")
				output, err := ops.Convert(c.Context, db, cfg, memo, input)
				if err != nil {
					return outputError(err)
				}
				if c.Bool("json") {
					return outputJSON(w, output)
				}
				return printConversion(w, output)
			}

			scanner := bufio.NewScanner(c.App.Reader)
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes(cfg))
			enc := json.NewEncoder(w)
			line := 0
			for scanner.Scan() {
				line++
				input.Text = scanner.Text()
				output, err := ops.Convert(c.Context, db, cfg, memo, input)
				if err != nil {
					return outputError(fmt.Errorf("line %d: %w", line, err))
				}
				if c.Bool("json") {
					err = enc.Encode(output)
				} else {
					err = printConversion(w, output)
				}
				if err != nil {
					return err
				}
			}
			if err := scanner.Err(); err != nil {
				if stderrors.Is(err, bufio.ErrTooLong) {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("line %d exceeds maximum size", line+1)))
				}
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config, memo *ops.Memo, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web form and JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: cfg.WebBind, Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: cfg.WebPort, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			port := c.Int("port")
			if port < 0 || port > 65535 {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid port: %d", port)))
			}

			srv, err := web.NewServer(db, cfg, memo, logger, Version, c.String("bind"), port)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, logger)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded conversions, newest first, or search them with --query",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Full-text search query; results are ranked by relevance"},
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Filter by source (cli, web, api, mcp)"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Max items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Usage: "Pagination offset"},
		},
		Action: func(c *cli.Context) error {
			if c.IsSet("query") {
				output, err := ops.Search(c.Context, db, ops.SearchInput{
					Query:  c.String("query"),
					Source: c.String("source"),
					Limit:  c.Int("limit"),
					Offset: c.Int("offset"),
				})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(c.App.Writer, output)
			}

			output, err := ops.List(c.Context, db, ops.ListInput{
				Source: c.String("source"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one recorded conversion",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("id is required"))
			}

			output, err := ops.Fetch(c.Context, db, ops.FetchInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// purgeCmd creates the purge command.
func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete recorded conversions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Filter by source"},
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if created more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}

			if source := c.String("source"); source != "" {
				input.Source = &source
			}
			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}

			output, err := ops.Purge(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write recorded conversions to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Filter by source"},
			&cli.StringFlag{Name: "dir", Usage: "Exports directory (default ~/.numwords/exports)"},
			&cli.StringFlag{Name: "path", Usage: "File name inside the exports directory (default <source>-<timestamp>.jsonl)"},
		},
		Action: func(c *cli.Context) error {
			dir := c.String("dir")
			if dir == "" {
				d, err := defaultExportsDir()
				if err != nil {
					return outputError(err)
				}
				dir = d
			}

			path := c.String("path")
			if path != "" && !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}

			output, err := ops.Export(c.Context, db, ops.ExportInput{
				Dir:    dir,
				Path:   path,
				Source: c.String("source"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(c.App.Writer, output)
		},
	}
}

// Helper functions

// printConversion writes the converted text, then one line per phrase when explained.
func printConversion(w io.Writer, output *ops.ConvertOutput) error {
	if _, err := fmt.Fprintln(w, output.Output); err != nil {
		return err
	}
	for _, r := range output.Replacements {
		if _, err := fmt.Fprintf(w, "  %s -> %s\n", strings.Join(r.Words, " "), r.Numeral); err != nil {
			return err
		}
	}
	return nil
}

// outputJSON marshals result to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var nErr *errors.NumwordsError
	if !stderrors.As(err, &nErr) {
		return cli.Exit(err.Error(), 1)
	}
	_, msg := errors.From(err)
	return cli.Exit(fmt.Sprintf("[%s] %s", nErr.Code, msg), 1)
}

// defaultExportsDir returns ~/.numwords/exports.
func defaultExportsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewInternal(fmt.Errorf("failed to get home directory: %w", err))
	}
	return filepath.Join(homeDir, baseDirName, ops.ExportsDirName), nil
}

// maxLineBytes returns the scanner limit for one stdin line.
func maxLineBytes(cfg *config.Config) int {
	if cfg.MaxInputChars <= 0 {
		return defaultMaxLineBytes
	}
	// one spare byte keeps the size check in ops authoritative
	return cfg.MaxInputChars*utf8.UTFMax + 1
}

// parseDuration parses "7d" format to days.
func parseDuration(s string) (int, error) {
	if numStr, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(numStr)
		if err != nil {
			return 0, fmt.Errorf("invalid duration: %s", s)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be non-negative")
		}
		return days, nil
	}
	return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
}
