package grouping

import (
	"path/filepath"
	"strings"
)

// FileGroup maps a discovered statement file to its destination CSV
// name. Files directly under root route to defaultName; files below
// any subdirectory route to "<first segment>.csv", no matter how
// deeply nested. Pure function of the two paths.
func FileGroup(root, path, defaultName string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return defaultName
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	if len(segments) > 1 {
		return segments[0] + ".csv"
	}
	return defaultName
}
