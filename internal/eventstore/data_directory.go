package eventstore

import (
	"os"
	"path/filepath"
)

// DataDirectory returns the best available data directory, trying
// production paths first, then falling back to user-accessible locations
// for development/testing.
func DataDirectory() string {
	productionPaths := []string{
		"/var/lib/deshibites-pos-bridge",
		"/usr/local/var/deshibites-pos-bridge",
	}

	for _, path := range productionPaths {
		if err := os.MkdirAll(path, 0755); err == nil {
			// Test if we can actually write to it
			testFile := filepath.Join(path, ".write_test")
			if file, err := os.Create(testFile); err == nil {
				_ = file.Close()
				_ = os.Remove(testFile)
				return path
			}
		}
	}

	fallbackPaths := []string{
		filepath.Join(os.TempDir(), "deshibites-pos-bridge"),
		"./data",
	}

	for _, path := range fallbackPaths {
		if err := os.MkdirAll(path, 0755); err == nil {
			return path
		}
	}

	return "."
}
