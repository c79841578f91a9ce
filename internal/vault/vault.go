// Package vault provides file lookup over a directory of notes: path
// resolution, content reads, and the markdown path index backing
// autocomplete.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// File is a resolved note file. Path is vault-relative and slash-separated.
type File struct {
	Path string
	Name string
}

// Vault is the directory tree holding notes.
type Vault struct {
	root string

	mu    sync.RWMutex
	paths []string // sorted markdown paths, for autocomplete
}

// New creates a vault rooted at dir and builds the initial path index.
func New(dir string) (*Vault, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve vault root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", dir)
	}

	v := &Vault{root: abs}
	v.Reindex()
	return v, nil
}

// Root returns the absolute vault root directory.
func (v *Vault) Root() string { return v.root }

// Normalize converts a user-supplied note path into canonical vault form:
// whitespace trimmed, backslashes converted to slashes, cleaned. Returns ""
// for paths that are empty or escape the vault.
func Normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)[1:] // anchored clean strips any ../ prefix tricks
	if p == "" || p == "." {
		return ""
	}
	return p
}

// Resolve looks up a note path. The path is normalized first. Returns an
// error when the path is empty, escapes the vault, does not exist, or names
// a directory rather than a file.
func (v *Vault) Resolve(p string) (*File, error) {
	norm := Normalize(p)
	if norm == "" {
		return nil, fmt.Errorf("resolve %q: empty path", p)
	}

	info, err := os.Stat(filepath.Join(v.root, filepath.FromSlash(norm)))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", norm, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resolve %q: is a folder", norm)
	}

	return &File{Path: norm, Name: path.Base(norm)}, nil
}

// Read returns the file's content.
func (v *Vault) Read(f *File) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(f.Path)))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	return data, nil
}

// Fingerprint returns a cheap content hash, used by the preview cache to
// detect edits without re-rendering unchanged notes.
func (v *Vault) Fingerprint(f *File) uint64 {
	data, err := v.Read(f)
	if err != nil {
		return 0
	}
	return xxhash.Sum64(data)
}

// Paths returns the current sorted list of markdown file paths.
func (v *Vault) Paths() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]string, len(v.paths))
	copy(out, v.paths)
	return out
}

// Reindex rebuilds the markdown path index by walking the vault. Called at
// startup and whenever the watcher reports filesystem changes.
func (v *Vault) Reindex() {
	var paths []string
	_ = filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtrees
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != v.root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".md") {
			rel, err := filepath.Rel(v.root, p)
			if err == nil {
				paths = append(paths, filepath.ToSlash(rel))
			}
		}
		return nil
	})
	sort.Strings(paths)

	v.mu.Lock()
	v.paths = paths
	v.mu.Unlock()
}

// Suggest returns up to limit markdown paths containing query,
// case-insensitive. An empty query yields no suggestions.
func (v *Vault) Suggest(query string, limit int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" || limit <= 0 {
		return nil
	}

	var matches []string
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, p := range v.paths {
		if strings.Contains(strings.ToLower(p), query) {
			matches = append(matches, p)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches
}
