package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled slog.Level
		hidden  slog.Level
	}{
		{"default is info", "", slog.LevelInfo, slog.LevelDebug},
		{"debug", "debug", slog.LevelDebug, slog.LevelDebug - 4},
		{"warn", "WARN", slog.LevelWarn, slog.LevelInfo},
		{"error", "error", slog.LevelError, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(&Options{Level: tt.level, Stderr: &buf})

			assert.True(t, logger.Enabled(context.Background(), tt.enabled))
			assert.False(t, logger.Enabled(context.Background(), tt.hidden))
		})
	}
}

func TestNewInvalidLevelFallsBack(t *testing.T) {
	var buf bytes.Buffer

	logger := New(&Options{Level: "loud", Stderr: &buf})

	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.Contains(t, buf.String(), "could not parse logger level")
	assert.Contains(t, buf.String(), "level=loud")
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&Options{Format: "json", Stderr: &buf})

	logger.Info("contact added", "id", "1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "contact added", entry["msg"])
	assert.Equal(t, "1", entry["id"])
}

func TestNewInvalidFormatFallsBackToText(t *testing.T) {
	var buf bytes.Buffer

	New(&Options{Format: "xml", Stderr: &buf})

	assert.Contains(t, buf.String(), "could not parse logger format")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestNewFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "phonebook.log")

	New(&Options{File: path}).Info("first")
	New(&Options{File: path}).Info("second")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestNewDevNullDiscards(t *testing.T) {
	logger := New(&Options{File: os.DevNull})

	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewUnopenableFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	var buf bytes.Buffer

	New(&Options{File: filepath.Join(blocker, "phonebook.log"), Stderr: &buf})

	assert.Contains(t, buf.String(), "could not open logger file")
}
