package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T, format Format, level Level) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   path,
		Format: format,
		Level:  level,
	})
	require.NoError(t, err)
	return logger, path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestFileLoggerJSONFormat(t *testing.T) {
	logger, path := newTestLogger(t, FormatJSON, DebugLevel)
	ctx := context.Background()

	logger.Info(ctx, "scan started", Fields{"root": "/data", "files": 42})
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "scan started", entry["message"])
	assert.Equal(t, "/data", entry["root"])
	assert.Equal(t, float64(42), entry["files"])
	assert.NotEmpty(t, entry["timestamp"])
}

func TestFileLoggerTextFormat(t *testing.T) {
	logger, path := newTestLogger(t, FormatText, DebugLevel)
	ctx := context.Background()

	logger.Warn(ctx, "root skipped", Fields{"path": "/missing"})
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[WARN]")
	assert.Contains(t, lines[0], "root skipped")
	assert.Contains(t, lines[0], "path=/missing")
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	logger, path := newTestLogger(t, FormatJSON, WarnLevel)
	ctx := context.Background()

	logger.Debug(ctx, "ignored", nil)
	logger.Info(ctx, "ignored too", nil)
	logger.Warn(ctx, "kept", nil)
	logger.Error(ctx, "kept too", assert.AnError, nil)
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	assert.Len(t, lines, 2)
}

func TestFileLoggerWithFields(t *testing.T) {
	logger, path := newTestLogger(t, FormatJSON, DebugLevel)
	ctx := context.Background()

	scoped := logger.WithFields(Fields{"scan_id": "ab12cd34"})
	scoped.Info(ctx, "directory done", Fields{"path": "/data/sub"})
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "ab12cd34", entry["scan_id"])
	assert.Equal(t, "/data/sub", entry["path"])
}

func TestFileLoggerErrorField(t *testing.T) {
	logger, path := newTestLogger(t, FormatJSON, DebugLevel)
	ctx := context.Background()

	logger.Error(ctx, "move failed", assert.AnError, nil)
	require.NoError(t, logger.Close())

	lines := readLines(t, path)
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.NotEmpty(t, entry["error"])
}

func TestFileLoggerRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotate.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:       path,
		Format:     FormatText,
		Level:      DebugLevel,
		MaxSize:    128,
		MaxBackups: 2,
	})
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 20; i++ {
		logger.Info(ctx, "a message long enough to trip the size limit quickly", nil)
	}
	require.NoError(t, logger.Close())

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "expected at least one rotated backup")
}

func TestNullLoggerIsSilent(t *testing.T) {
	logger := NewNullLogger()
	ctx := context.Background()

	logger.Debug(ctx, "x", nil)
	logger.Info(ctx, "x", nil)
	logger.Warn(ctx, "x", nil)
	logger.Error(ctx, "x", assert.AnError, nil)
	assert.NoError(t, logger.Close())
	assert.NotNil(t, logger.WithFields(Fields{"k": "v"}))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}
