// Package logger builds the slog.Logger handed to the storage backends and
// the phonebook service.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects level, destination and format.
type Options struct {
	Level  string // debug, info, warn or error
	File   string // append logs to file; "-" writes to Stderr, os.DevNull discards
	Format string // text or json

	// Stderr receives logs when File is "" or "-". Defaults to os.Stderr.
	Stderr io.Writer
}

func level(option string) (slog.Leveler, bool) {
	switch strings.ToLower(option) {
	case "":
		return nil, true
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return nil, false
	}
}

// New returns a logger for options. Unparseable settings fall back to their
// defaults and the fallback is logged as a warning on the new logger.
func New(options *Options) *slog.Logger {
	level, ok := level(options.Level)
	if !ok {
		bad := options.Level
		options.Level = ""
		logger := New(options)
		logger.Warn("could not parse logger level", "level", bad)
		return logger
	}
	opts := slog.HandlerOptions{Level: level}

	var output io.Writer
	switch options.File {
	case "", "-":
		output = options.Stderr
		if output == nil {
			output = os.Stderr
		}
	case os.DevNull:
		return slog.New(slog.DiscardHandler)
	default:
		f, err := openFile(options.File)
		if err != nil {
			options.File = ""
			logger := New(options)
			logger.Warn("could not open logger file", "err", err)
			return logger
		}
		output = f
	}

	switch strings.ToLower(options.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(output, &opts))
	case "", "text":
		return slog.New(slog.NewTextHandler(output, &opts))
	default:
		bad := options.Format
		options.Format = "text"
		logger := New(options)
		logger.Warn("could not parse logger format", "format", bad)
		return logger
	}
}

func openFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
}
