package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   project/ (pantry.yaml)
	//     subdir/nested/
	//   legacy/data/recipes.json
	//   empty/
	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	nestedDir := filepath.Join(projectDir, "subdir", "nested")
	legacyDir := filepath.Join(baseDir, "legacy")
	emptyDir := filepath.Join(baseDir, "empty")

	for _, dir := range []string{nestedDir, filepath.Join(legacyDir, "data"), emptyDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(projectDir, "pantry.yaml"), []byte("backend: fs\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(legacyDir, "data", "recipes.json"), []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		wantRoot  string
		wantErr   bool
	}{
		{"Start at Root", projectDir, projectDir, false},
		{"Start Nested Deeply", nestedDir, projectDir, false},
		{"Data File Marker", filepath.Join(legacyDir, "data"), legacyDir, false},
		{"No Root Found", emptyDir, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FindRoot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrRootNotFound) {
					t.Errorf("expected ErrRootNotFound, got %v", err)
				}
				return
			}
			if filepath.Clean(got) != filepath.Clean(tt.wantRoot) {
				t.Errorf("FindRoot() = %v, want %v", got, tt.wantRoot)
			}
		})
	}
}
