package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []LogEntry {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var e LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestJSONLogger_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.jsonl")
	logger, err := NewJSONLogger(LoggerConfig{
		OutputPath: path,
		Level:      LevelInfo,
		Fields:     map[string]any{"run": "r1"},
	})
	require.NoError(t, err)

	logger.Info("started", StringField("kind", "equal"))
	logger.Debug("hidden")
	logger.Warn("careful")
	logger.Error("broken", ErrorField(errors.New("boom")))
	require.NoError(t, logger.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 3)

	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "started", entries[0].Message)
	assert.Equal(t, "r1", entries[0].Fields["run"])
	assert.Equal(t, "equal", entries[0].Fields["kind"])

	assert.Equal(t, "WARN", entries[1].Level)
	assert.Equal(t, "ERROR", entries[2].Level)
	assert.Equal(t, "boom", entries[2].Fields["error"])
}

func TestJSONLogger_DebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.jsonl")
	logger, err := NewJSONLogger(LoggerConfig{
		OutputPath: path,
		Level:      LevelDebug,
	})
	require.NoError(t, err)

	logger.Debug("visible")
	require.NoError(t, logger.Close())

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "DEBUG", entries[0].Level)
}

func TestJSONLogger_WithFieldsSharesSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.jsonl")
	logger, err := NewJSONLogger(LoggerConfig{OutputPath: path})
	require.NoError(t, err)

	child := logger.WithFields(StringField("scope", "child"))
	child.Info("from child")
	logger.Info("from parent")
	require.NoError(t, logger.Close())

	child.Info("after close")

	entries := readEntries(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "child", entries[0].Fields["scope"])
	assert.NotContains(t, entries[1].Fields, "scope")
}

func TestJSONLogger_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "close.jsonl")
	logger, err := NewJSONLogger(LoggerConfig{OutputPath: path})
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestJSONLogger_Stdout(t *testing.T) {
	logger, err := NewJSONLogger(LoggerConfig{})
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
}

func TestJSONLogger_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewJSONLogger(LoggerConfig{
		OutputPath: filepath.Join(blocker, "sub", "log.jsonl"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestJSONLogger_MarshalError(t *testing.T) {
	orig := jsonMarshal
	defer func() { jsonMarshal = orig }()
	jsonMarshal = func(any) ([]byte, error) {
		return nil, errors.New("marshal failed")
	}

	path := filepath.Join(t.TempDir(), "marshal.jsonl")
	logger, err := NewJSONLogger(LoggerConfig{OutputPath: path})
	require.NoError(t, err)

	logger.Info("dropped")
	require.NoError(t, logger.Close())

	assert.Empty(t, readEntries(t, path))
}
