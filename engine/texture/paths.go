package texture

import (
	"os"
	"path/filepath"
	"runtime"
)

// ResolvePath locates a relative asset path when the game is started
// from a subdirectory (go run ./cmd/game, go test). It tries the path
// itself, then up to two parent directories, then the module root.
// Absolute paths and unresolvable ones are returned unchanged.
func ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	candidates := []string{
		path,
		filepath.Join("..", path),
		filepath.Join("..", "..", path),
	}

	// module root, relative to this source file
	if _, filename, _, ok := runtime.Caller(0); ok {
		root := filepath.Join(filepath.Dir(filename), "..", "..")
		candidates = append(candidates, filepath.Join(root, path))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(c)
			if err != nil {
				return c
			}
			return abs
		}
	}
	return path
}
