package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

// IsPattern reports whether entry should be expanded against the filesystem.
// Braces are not treated as pattern syntax because path templates use them.
func IsPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[")
}

// ExpandGlob returns the files under root matching pattern, as slash
// separated paths relative to root, sorted lexicographically. A "*" does
// not cross directory boundaries; "**" does.
func ExpandGlob(fs afero.Fs, root, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var matches []string
	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}

			return nil
		}

		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)
		if g.Match(rel) {
			matches = append(matches, rel)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	sort.Strings(matches)
	return matches, nil
}
