package prefabs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// SceneHash fingerprints a scene together with the field scripts it
// references. Reloads are skipped while the hash is unchanged.
func SceneHash(name string) (uint64, error) {
	data, err := Load(name)
	if err != nil {
		return 0, fmt.Errorf("prefabs: hash %s: %w", name, err)
	}
	spec, err := ParseSceneSpec(data)
	if err != nil {
		return 0, fmt.Errorf("prefabs: hash %s: %w", name, err)
	}
	return hashScene(data, spec.Scripts(), LoadScript)
}

func hashScene(data []byte, scripts []string, load func(string) ([]byte, error)) (uint64, error) {
	d := xxhash.New()
	_, _ = d.Write(data)
	for _, name := range scripts {
		src, err := load(name)
		if err != nil {
			return 0, fmt.Errorf("prefabs: hash script %s: %w", name, err)
		}
		_, _ = d.WriteString(name)
		_, _ = d.Write(src)
	}
	return d.Sum64(), nil
}
