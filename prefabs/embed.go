package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DiskDir and ScriptsDir are where the sandbox looks for editable copies of
// the embedded data, relative to the working directory.
const (
	DiskDir    = "prefabs"
	ScriptsDir = "prefabs/scripts"
)

//go:embed *.yaml scripts/*.tengo
var FS embed.FS

// Load reads a prefab, preset or arena file. A copy under DiskDir wins over
// the embedded one so edits are picked up without a rebuild.
func Load(name string) ([]byte, error) {
	return read(cleanPath(name, ""))
}

// LoadScript reads a selection script. Bare names resolve under scripts/.
func LoadScript(name string) ([]byte, error) {
	return read(cleanPath(name, "scripts"))
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return FS.ReadFile(clean)
}

func cleanPath(name, dir string) string {
	if name == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(name), DiskDir+"/")
	if dir == "" {
		return s
	}
	s = strings.TrimPrefix(s, dir+"/")
	return path.Join(dir, s)
}
