package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the namespace under the system temp dir used by sandboxed runs.
const DevDirName = "pantry-dev"

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataDir determines the actual data directory based on safety rules.
// With forceTemp it re-roots the path into a namespaced temporary directory,
// unless the path already lives under the system temp dir.
func ResolveDataDir(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	cleanUserPath := filepath.Clean(userPath)
	rel, err := filepath.Rel(os.TempDir(), cleanUserPath)
	if err == nil && filepath.IsAbs(cleanUserPath) && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	subName := filepath.Base(cleanUserPath)
	if userPath == "" || subName == "." || subName == string(os.PathSeparator) {
		subName = "default"
	}
	return filepath.Join(os.TempDir(), DevDirName, subName)
}
