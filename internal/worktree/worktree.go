// Package worktree reads and writes the plain files of a repository's working directory.
// Only regular files directly under the root are tracked; subdirectories and the
// .gitlet directory are ignored.
package worktree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// WorkTree is the working directory of a repository.
type WorkTree struct {
	root string
}

// New returns a working tree rooted at dir.
func New(dir string) *WorkTree {
	return &WorkTree{root: dir}
}

// Root returns the working directory path.
func (w *WorkTree) Root() string {
	return w.root
}

// List returns the names of all plain files in the working directory, sorted.
func (w *WorkTree) List() ([]string, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, fmt.Errorf("list working directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether filename is a plain file in the working directory.
func (w *WorkTree) Exists(filename string) (bool, error) {
	if !ValidName(filename) {
		return false, nil
	}
	info, err := os.Lstat(w.path(filename))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", filename, err)
	}
	return info.Mode().IsRegular(), nil
}

// Read returns the content of a working file.
// Returns a NotFoundError if the file does not exist.
func (w *WorkTree) Read(filename string) ([]byte, error) {
	if !ValidName(filename) {
		return nil, &models.NotFoundError{Kind: models.KindFile, Name: filename}
	}
	data, err := os.ReadFile(w.path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.NotFoundError{Kind: models.KindFile, Name: filename}
		}
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, nil
}

// Write replaces the content of a working file: tempfile -> fsync -> rename.
func (w *WorkTree) Write(filename string, data []byte) (err error) {
	if !ValidName(filename) {
		return fmt.Errorf("invalid file name %q", filename)
	}

	f, err := os.CreateTemp(w.root, ".gitlet-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	// Clean up on any error
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("fsync temp file: %w", err)
	}
	if err = f.Chmod(0644); err != nil {
		f.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp, w.path(filename)); err != nil {
		return fmt.Errorf("rename temp to %s: %w", filename, err)
	}
	return nil
}

// Remove deletes a working file. A file that is already gone is not an error.
func (w *WorkTree) Remove(filename string) error {
	if !ValidName(filename) {
		return nil
	}
	if err := os.Remove(w.path(filename)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", filename, err)
	}
	return nil
}

// ValidName reports whether filename names a plain file directly under the root.
func ValidName(filename string) bool {
	if filename == "" || filename == "." || filename == ".." {
		return false
	}
	if strings.ContainsAny(filename, `/\`) {
		return false
	}
	return true
}

func (w *WorkTree) path(filename string) string {
	return filepath.Join(w.root, filename)
}
