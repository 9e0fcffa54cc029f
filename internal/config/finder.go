package config

import (
	"os"
	"path/filepath"
)

// FindProjectConfig finds scripts/buildConfig.* by walking up directories.
// The walk stops at the first directory holding a src/ directory: that is
// the project root, and a configuration above it belongs to another project.
func FindProjectConfig(dir string) string {
	for {
		for _, ext := range []string{"json", "yml", "yaml", "toml"} {
			path := filepath.Join(dir, "scripts", "buildConfig."+ext)

			if _, err := os.Stat(path); err == nil {
				return path
			}
		}

		if isProjectRoot(dir) {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return ""
}

func isProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "src"))
	return err == nil && info.IsDir()
}
