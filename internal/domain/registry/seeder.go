package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Nahom-cyber-coder/Web-based-operating-system/backend/internal/shared/paths"
)

// Seeder loads extra catalog files from disk on top of the embedded catalog
type Seeder struct {
	catalog *Catalog
	dir     string
	logger  *zap.Logger
}

// NewSeeder creates a seeder that extends catalog from dir
func NewSeeder(catalog *Catalog, dir string, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{catalog: catalog, dir: dir, logger: logger.Named("seeder")}
}

// Seed merges every *.toml file in the directory, in name order. A missing
// directory is not an error; a file that fails to parse is skipped.
func (s *Seeder) Seed() (loaded, failed int, err error) {
	if s.dir == "" {
		return 0, 0, nil
	}
	dir, err := paths.Expand(s.dir)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid catalog directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		s.logger.Warn("Catalog directory not found", zap.String("dir", s.dir))
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := s.loadFile(dir, path); err != nil {
			s.logger.Warn("Failed to load catalog file", zap.String("file", entry.Name()), zap.Error(err))
			failed++
			continue
		}
		s.logger.Debug("Loaded catalog file", zap.String("file", entry.Name()))
		loaded++
	}

	s.logger.Info("Catalog seeding complete", zap.Int("loaded", loaded), zap.Int("failed", failed))
	return loaded, failed, nil
}

// loadFile reads path, refusing symlinks that lead outside dir
func (s *Seeder) loadFile(dir, path string) error {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return err
	}
	if !paths.Within(root, resolved) {
		return fmt.Errorf("%s points outside the catalog directory", filepath.Base(path))
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return err
	}
	extra, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	s.catalog.Merge(extra)
	return nil
}
