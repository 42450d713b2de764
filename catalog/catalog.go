// Package catalog discovers playable clips under a directory tree and picks among them.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mbeissinger/vj-looper/filesystem"
	"github.com/mbeissinger/vj-looper/log"
	"github.com/samber/lo"
)

var (
	// ErrInvalidRoot is returned when the videos directory is missing or not a directory.
	ErrInvalidRoot = errors.New("invalid videos directory")

	// ErrEmptyCatalog is returned when selection is attempted on a catalog without entries.
	ErrEmptyCatalog = errors.New("no playable videos found")
)

// Catalog is the immutable, ordered list of clip paths discovered for a session.
type Catalog struct {
	root  string
	paths []string
}

// New builds a catalog from already known paths. Used by tests and by Filter.
func New(root string, paths []string) Catalog {
	return Catalog{root: root, paths: append([]string(nil), paths...)}
}

// Root returns the directory the catalog was built from.
func (c Catalog) Root() string {
	return c.root
}

// Len returns the number of clips.
func (c Catalog) Len() int {
	return len(c.paths)
}

// IsEmpty reports whether no clip was discovered.
func (c Catalog) IsEmpty() bool {
	return len(c.paths) == 0
}

// At returns the i-th clip path.
func (c Catalog) At(i int) string {
	return c.paths[i]
}

// Paths returns a copy of every clip path in discovery order.
func (c Catalog) Paths() []string {
	return append([]string(nil), c.paths...)
}

// Rel returns path relative to the catalog root, falling back to path itself.
func (c Catalog) Rel(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		return path
	}
	return rel
}

// Filter keeps the clips whose path relative to the root fuzzy-matches query, ignoring case.
// An empty query keeps everything.
func (c Catalog) Filter(query string) Catalog {
	query = strings.TrimSpace(query)
	if query == "" {
		return c
	}

	return New(c.root, lo.Filter(c.paths, func(path string, _ int) bool {
		return fuzzy.MatchFold(query, filepath.ToSlash(c.Rel(path)))
	}))
}

// ValidateRoot resolves root to an absolute path and checks that it is an existing directory.
func ValidateRoot(root string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidRoot)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}

	isDir, err := filesystem.API().IsDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, abs)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, abs, err)
	}
	if !isDir {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, abs)
	}

	return abs, nil
}

// Build walks root recursively and collects the absolute paths of files whose name ends with one of formats.
// Matching is a case-sensitive suffix test. Finding nothing is not an error; callers decide.
// Unreadable subdirectories are logged and skipped, an unreadable root fails the walk.
func Build(root string, formats []string) (Catalog, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Catalog{}, err
	}

	formats = lo.Compact(formats)
	paths := make([]string, 0, 64)

	err = filesystem.API().Walk(abs, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			if path == abs {
				return walkErr
			}
			log.WithFields(log.Fields{"path": path}).Warnf("skipping unreadable entry: %v", walkErr)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() {
			return nil
		}

		if lo.SomeBy(formats, func(format string) bool { return strings.HasSuffix(path, format) }) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("walk %s: %w", abs, err)
	}

	return Catalog{root: abs, paths: paths}, nil
}
