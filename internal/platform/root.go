package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no project marker exists above the start dir.
var ErrRootNotFound = errors.New("project root not found")

// FindRoot looks upwards from startDir for a project root.
// Indicators are a pantry.yaml file or a data/recipes.json file.
// It returns the absolute path of the first directory that has one.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName+".yaml") || hasFile(dir, filepath.Join(DefaultDataDir, "recipes.json")) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
