package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFilters(t *testing.T) {
	tests := []struct {
		path   string
		spec   bool
		script bool
	}{
		{"prefabs/custom_gravity.yaml", true, false},
		{"scene.YML", true, false},
		{"prefabs/scripts/swirl.tengo", false, true},
		{"prefabs/scripts/old.lua", false, false},
		{"notes.txt", false, false},
		{"prefabs/.custom_gravity.yaml.swp", false, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert.Equal(t, tc.spec, isSpecFile(tc.path))
			assert.Equal(t, tc.script, isScriptFile(tc.path))
		})
	}
}

func TestWatcherReportsSceneEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir, filepath.Join(dir, "does-not-exist"))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: a"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for scene edit")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	assert.False(t, ok)
}
