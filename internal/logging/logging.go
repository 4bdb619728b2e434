// Package logging builds the structured logger shared by the CLI, web, and MCP
// front ends. Records are JSON lines in a size-rotated file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hpungsan/numwords/internal/config"
)

// FileName is the log file created inside the log directory.
const FileName = "numwords.log"

// New returns a JSON logger writing to dir/numwords.log at the given level.
// The returned closer flushes and closes the rotating file.
func New(level, dir string) (*slog.Logger, io.Closer, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, nil, err
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(dir, FileName),
		MaxSize:    16, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), w, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
