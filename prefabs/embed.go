package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// Dir is where on-disk overrides of the embedded prefabs live.
const Dir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// LoadScript returns an embedded tengo script by name, with or without the
// prefabs/ and scripts/ prefixes.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Load returns a prefab, preferring the on-disk copy so edits apply without
// a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, Dir+"/")
}

func cleanScriptPath(path string) string {
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, Dir+"/")
	s = strings.TrimPrefix(s, "scripts/")
	return "scripts/" + s
}
