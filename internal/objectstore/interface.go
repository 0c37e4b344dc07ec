// Package objectstore provides content-addressable storage for blobs and commits.
package objectstore

import (
	"context"
	"errors"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// ErrHashMismatch is returned when an object's declared id does not match its content.
var ErrHashMismatch = errors.New("object hash mismatch")

// Store defines the contract for immutable object storage.
// Objects are never rewritten or deleted once stored.
type Store interface {
	// PutBlob stores a blob and returns its id. The id is filled in when empty and
	// verified against the content otherwise. Storing an existing blob is a no-op.
	PutBlob(ctx context.Context, blob *models.Blob) (string, error)

	// GetBlob returns the blob with the given id.
	// Returns models.ErrObjectNotFound if it does not exist.
	GetBlob(ctx context.Context, id string) (*models.Blob, error)

	// HasBlob checks whether a blob with the given id exists.
	HasBlob(ctx context.Context, id string) (bool, error)

	// PutCommit stores a commit and returns its id, with the same rules as PutBlob.
	PutCommit(ctx context.Context, commit *models.Commit) (string, error)

	// GetCommit returns the commit with the given id.
	// Returns models.ErrObjectNotFound if it does not exist.
	GetCommit(ctx context.Context, id string) (*models.Commit, error)

	// HasCommit checks whether a commit with the given id exists.
	HasCommit(ctx context.Context, id string) (bool, error)

	// ListCommitIDs returns the ids of every stored commit in sorted order.
	ListCommitIDs(ctx context.Context) ([]string, error)

	// ResolveCommitPrefix expands an abbreviated commit id to the full id.
	ResolveCommitPrefix(ctx context.Context, prefix string) (string, error)
}
