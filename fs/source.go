// Package fs discovers annotated documents and their statistics sidecars
// on the local filesystem.
package fs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fwojciec/nerview"
)

// DefaultRoots are the directories searched when none are configured.
var DefaultRoots = []string{"examples", "sample_data"}

// DocumentExt is the extension of annotated documents.
const DocumentExt = ".html"

// StatsSuffix replaces DocumentExt to form the sidecar path.
const StatsSuffix = "_stats.json"

// LayoutHint describes the expected folder structure when nothing is found.
const LayoutHint = `examples/
├── subfolder1/
│   ├── document1.html
│   └── document2.html
├── subfolder2/
│   └── document3.html
└── single_file.html

sample_data/
├── test1.html
└── test2.html`

// Ensure Source implements nerview.DocumentSource at compile time.
var _ nerview.DocumentSource = (*Source)(nil)

// Source finds documents recursively under a fixed set of roots.
type Source struct {
	roots []string
}

// NewSource creates a Source searching roots, or DefaultRoots when empty.
func NewSource(roots ...string) *Source {
	if len(roots) == 0 {
		roots = DefaultRoots
	}
	return &Source{roots: roots}
}

// Roots returns the searched directories.
func (s *Source) Roots() []string {
	return s.roots
}

// FindDocuments walks every root and returns sorted document paths with
// forward slashes. Missing roots are skipped.
func (s *Source) FindDocuments() ([]string, error) {
	var paths []string
	for _, root := range s.roots {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), DocumentExt) {
				paths = append(paths, filepath.ToSlash(path))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if len(paths) == 0 {
		return nil, nerview.Errorf(nerview.ENOTFOUND, "no HTML files found in %s", strings.Join(s.roots, ", "))
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadDocument reads a discovered document.
func (s *Source) LoadDocument(path string) (*nerview.Document, error) {
	path = clean(path)
	if err := s.check(path); err != nil {
		return nil, err
	}

	native := filepath.FromSlash(path)
	info, err := os.Stat(native)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(native)
	if err != nil {
		return nil, err
	}

	return &nerview.Document{
		Path:    path,
		Content: string(content),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// LoadStats returns the sidecar of a discovered document verbatim.
func (s *Source) LoadStats(path string) (json.RawMessage, error) {
	path = clean(path)
	if err := s.check(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.FromSlash(StatsPath(path)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nerview.Errorf(nerview.ENOTFOUND, "No statistics file found")
	}
	if err != nil {
		return nil, err
	}

	if !json.Valid(data) {
		return nil, nerview.Errorf(nerview.EINVALID, "statistics file %s is not valid JSON", StatsPath(path))
	}
	return json.RawMessage(data), nil
}

// check restricts access to documents FindDocuments would list: HTML files
// reached from a root without following symlinked directories. It inspects
// only the path's own components, so loading a listed document does not
// walk the roots again.
func (s *Source) check(path string) error {
	if !strings.HasSuffix(path, DocumentExt) {
		return nerview.Errorf(nerview.EINVALID, "not an HTML document: %s", path)
	}

	for _, root := range s.roots {
		rel, ok := within(clean(root), path)
		if ok && reachable(root, rel) {
			return nil
		}
	}
	return nerview.Errorf(nerview.ENOTFOUND, "document %q not found", path)
}

// within returns path relative to root when path lies below it. Both are
// cleaned, slash-separated paths.
func within(root, path string) (string, bool) {
	if root == "." {
		if filepath.IsAbs(filepath.FromSlash(path)) || path == ".." || strings.HasPrefix(path, "../") {
			return "", false
		}
		return path, true
	}
	rel, ok := strings.CutPrefix(path, strings.TrimSuffix(root, "/")+"/")
	return rel, ok && rel != ""
}

// reachable reports whether the walk from root descends to rel: every
// intermediate entry must be a real directory and the last must not be one.
func reachable(root, rel string) bool {
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return false
	}

	parts := strings.Split(rel, "/")
	dir := root
	for i, part := range parts {
		dir = filepath.Join(dir, part)
		info, err := os.Lstat(dir)
		if err != nil {
			return false
		}
		if last := i == len(parts)-1; last == info.IsDir() {
			return false
		}
	}
	return true
}

// StatsPath returns the sidecar path for a document path.
func StatsPath(path string) string {
	return strings.TrimSuffix(path, DocumentExt) + StatsSuffix
}

func clean(path string) string {
	return filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
}
