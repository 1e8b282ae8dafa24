package platform_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pantry/internal/platform"
)

func TestResolveDataDir(t *testing.T) {
	t.Parallel()

	tempRoot := os.TempDir()
	devBase := filepath.Join(tempRoot, platform.DevDirName)

	tests := []struct {
		name      string
		userPath  string
		forceTemp bool
		expected  string
	}{
		{"Normal Mode - Empty", "", false, "."},
		{"Normal Mode - Specific Path", "/srv/pantry/data", false, "/srv/pantry/data"},
		{"Dev Mode - Empty Path", "", true, filepath.Join(devBase, "default")},
		{"Dev Mode - Current Dir", ".", true, filepath.Join(devBase, "default")},
		{"Dev Mode - Relative Name", "data", true, filepath.Join(devBase, "data")},
		{"Dev Mode - Clean Name", "../bad/path", true, filepath.Join(devBase, "path")},
		{"Dev Mode - Exception for Temp Dir", filepath.Join(tempRoot, "my-test"), true, filepath.Join(tempRoot, "my-test")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := platform.ResolveDataDir(tt.userPath, tt.forceTemp)
			if got != tt.expected {
				t.Errorf("ResolveDataDir(%q, %v) = %q; want %q", tt.userPath, tt.forceTemp, got, tt.expected)
			}
		})
	}
}

func TestIsDevRun(t *testing.T) {
	if !platform.IsDevRun() {
		t.Errorf("IsDevRun() = false; want true inside go test")
	}
}
