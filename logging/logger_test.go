package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Config{OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("scene built", zap.Int("bodies", 388))
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), string(data))
	assert.Equal(t, "scene built", entry["msg"])
	assert.Equal(t, "customgravity", entry["logger"])
	assert.EqualValues(t, 388, entry["bodies"])
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := New(Config{Debug: true, OutputPaths: []string{path}})
	require.NoError(t, err)

	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	logger.Debug("physics: body created")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "physics: body created")
}

func TestNewBadOutput(t *testing.T) {
	_, err := New(Config{OutputPaths: []string{filepath.Join(t.TempDir(), "missing", "dir", "out.log")}})
	assert.Error(t, err)
}
