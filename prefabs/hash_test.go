package prefabs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneHash(t *testing.T) {
	a, err := SceneHash(DefaultScene)
	require.NoError(t, err)
	b, err := SceneHash(DefaultScene)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	orbit, err := SceneHash("orbit.yaml")
	require.NoError(t, err)
	assert.NotEqual(t, a, orbit)

	_, err = SceneHash("missing.yaml")
	assert.Error(t, err)
}

func TestHashSceneIncludesScripts(t *testing.T) {
	scripts := map[string]string{"f.tengo": "gx := 1\ngy := 0"}
	load := func(name string) ([]byte, error) {
		src, ok := scripts[name]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}

	data := []byte("name: x")
	before, err := hashScene(data, []string{"f.tengo"}, load)
	require.NoError(t, err)

	scripts["f.tengo"] = "gx := 2\ngy := 0"
	after, err := hashScene(data, []string{"f.tengo"}, load)
	require.NoError(t, err)
	assert.NotEqual(t, before, after, "script edits must change the hash")

	plain, err := hashScene(data, nil, load)
	require.NoError(t, err)
	assert.NotEqual(t, after, plain)

	_, err = hashScene(data, []string{"gone.tengo"}, load)
	assert.Error(t, err)
}
