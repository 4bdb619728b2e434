package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, closer, err := New("debug", dir)
	require.NoError(t, err)

	logger.Debug("converted", "source", "cli", "phrases", 2)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)

	line := strings.TrimSpace(string(data))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "converted", rec["msg"])
	assert.Equal(t, "cli", rec["source"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_LevelFilters(t *testing.T) {
	dir := t.TempDir()

	logger, closer, err := New("warn", dir)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("chatty", t.TempDir())
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	logger.Error("nothing happens")
}
