package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDB is the database file, relative to the working directory
	DefaultDB = "data/webdesk.db"
	// InMemoryDSN is SQLite's name for a private in-memory database
	InMemoryDSN = ":memory:"
)

// ErrEmpty is returned for an empty path
var ErrEmpty = errors.New("path is empty")

// Expand resolves a leading "~" and environment variables and cleans the
// result. SQLite special names (":memory:" and "file:" URIs) pass through.
func Expand(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrEmpty
	}
	if IsSpecial(path) {
		return path, nil
	}

	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %q: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Clean(path), nil
}

// IsSpecial reports whether path names something other than a plain file
func IsSpecial(path string) bool {
	return path == InMemoryDSN || strings.HasPrefix(path, "file:")
}

// EnsureParent creates the directory that will hold path
func EnsureParent(path string) error {
	if IsSpecial(path) {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == string(filepath.Separator) {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return nil
}

// Within reports whether path lies inside root once both are cleaned
func Within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
