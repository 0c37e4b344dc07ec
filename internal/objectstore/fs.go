package objectstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/models"
)

const (
	blobsDir   = "blobs"
	commitsDir = "commits"
)

// validID matches a lowercase hex-encoded SHA256 hash (64 characters).
var validID = regexp.MustCompile(`^[0-9a-f]{64}$`)

// FSStore implements Store using the local filesystem.
// Commits are stored flat under commits/. Blobs use a two-level directory
// structure keyed by the first two characters of the id.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem-backed object store rooted at the given directory.
func NewFSStore(root string) (*FSStore, error) {
	for _, dir := range []string{filepath.Join(root, blobsDir), filepath.Join(root, commitsDir)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create object dir: %w", err)
		}
	}
	return &FSStore{root: root}, nil
}

// PutBlob stores a blob record.
func (s *FSStore) PutBlob(ctx context.Context, blob *models.Blob) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	computed := blob.ComputeID()
	if blob.ID == "" {
		blob.ID = computed
	} else if blob.ID != computed {
		return "", fmt.Errorf("blob %s: computed %s: %w", blob.ID, computed, ErrHashMismatch)
	}
	if err := s.writeObject(s.blobPath(blob.ID), blob); err != nil {
		return "", fmt.Errorf("write blob %s: %w", blob.ID, err)
	}
	return blob.ID, nil
}

// GetBlob reads and verifies a blob record.
func (s *FSStore) GetBlob(_ context.Context, id string) (*models.Blob, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("blob %q: %w", id, models.ErrObjectNotFound)
	}
	var blob models.Blob
	if err := s.readObject(s.blobPath(id), &blob); err != nil {
		return nil, fmt.Errorf("blob %s: %w", id, err)
	}
	if blob.ID != id || blob.ComputeID() != id {
		return nil, fmt.Errorf("blob %s: content does not match id: %w", id, models.ErrStorageCorruption)
	}
	return &blob, nil
}

// HasBlob checks whether a blob exists.
func (s *FSStore) HasBlob(_ context.Context, id string) (bool, error) {
	if !validID.MatchString(id) {
		return false, nil
	}
	return exists(s.blobPath(id))
}

// PutCommit stores a commit record.
func (s *FSStore) PutCommit(ctx context.Context, commit *models.Commit) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	computed := commit.ComputeID()
	if commit.ID == "" {
		commit.ID = computed
	} else if commit.ID != computed {
		return "", fmt.Errorf("commit %s: computed %s: %w", commit.ID, computed, ErrHashMismatch)
	}
	if err := s.writeObject(s.commitPath(commit.ID), commit); err != nil {
		return "", fmt.Errorf("write commit %s: %w", commit.ID, err)
	}
	return commit.ID, nil
}

// GetCommit reads and verifies a commit record.
func (s *FSStore) GetCommit(_ context.Context, id string) (*models.Commit, error) {
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("commit %q: %w", id, models.ErrObjectNotFound)
	}
	var commit models.Commit
	if err := s.readObject(s.commitPath(id), &commit); err != nil {
		return nil, fmt.Errorf("commit %s: %w", id, err)
	}
	if commit.ID != id || commit.ComputeID() != id {
		return nil, fmt.Errorf("commit %s: content does not match id: %w", id, models.ErrStorageCorruption)
	}
	return &commit, nil
}

// HasCommit checks whether a commit exists.
func (s *FSStore) HasCommit(_ context.Context, id string) (bool, error) {
	if !validID.MatchString(id) {
		return false, nil
	}
	return exists(s.commitPath(id))
}

// ListCommitIDs returns all commit ids by scanning the commits directory.
func (s *FSStore) ListCommitIDs(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, commitsDir))
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !validID.MatchString(e.Name()) {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// ResolveCommitPrefix expands an abbreviated commit id.
// Returns a NotFoundError when nothing matches and ErrAmbiguousID when several do.
func (s *FSStore) ResolveCommitPrefix(ctx context.Context, prefix string) (string, error) {
	prefix = strings.ToLower(prefix)
	if validID.MatchString(prefix) {
		ok, err := s.HasCommit(ctx, prefix)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &models.NotFoundError{Kind: models.KindCommitObject, Name: prefix}
		}
		return prefix, nil
	}
	if prefix == "" {
		return "", &models.NotFoundError{Kind: models.KindCommitObject, Name: prefix}
	}

	ids, err := s.ListCommitIDs(ctx)
	if err != nil {
		return "", err
	}
	var match string
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%s: %w", prefix, models.ErrAmbiguousID)
		}
		match = id
	}
	if match == "" {
		return "", &models.NotFoundError{Kind: models.KindCommitObject, Name: prefix}
	}
	return match, nil
}

// writeObject writes a JSON record via a temp file and rename.
// Existing objects are left untouched.
func (s *FSStore) writeObject(path string, v any) error {
	if _, err := os.Stat(path); err == nil {
		return nil // idempotent
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".obj-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *FSStore) readObject(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ErrObjectNotFound
		}
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode: %v: %w", err, models.ErrStorageCorruption)
	}
	return nil
}

// blobPath returns the filesystem path for a blob.
func (s *FSStore) blobPath(id string) string {
	return filepath.Join(s.root, blobsDir, id[:2], id)
}

// commitPath returns the filesystem path for a commit.
func (s *FSStore) commitPath(id string) string {
	return filepath.Join(s.root, commitsDir, id)
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return true, nil
}
