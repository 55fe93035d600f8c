package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures where the logger writes
type Options struct {
	Level      string // debug, info, warn or error; info when empty
	File       string // rotating JSON log file; text on Stderr when empty
	MaxSizeMB  int
	MaxBackups int
}

// ParseLevel maps the textual level used in configuration files
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log: invalid level '%s'", level)
}

// New builds the application logger. The level is held in levelVar so it can
// change after configuration is loaded. The returned closer flushes the file sink.
func New(opts Options, levelVar *slog.LevelVar) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	levelVar.Set(level)

	if opts.File == "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar})), nopCloser{}, nil
	}

	w := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = 32 // MB
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelVar})), w, nil
}

// nopCloser is returned for sinks that own no file
type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
