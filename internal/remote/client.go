// Package remote provides access to another gitlet repository used as a push/fetch endpoint.
package remote

import (
	"context"
	"errors"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
)

// ErrBranchMoved is returned by UpdateBranch when the remote tip no longer matches the expected one.
var ErrBranchMoved = errors.New("remote branch moved")

// Client defines the contract for a remote repository endpoint.
// Object operations follow the objectstore.Store contract.
type Client interface {
	objectstore.Store

	// GetBranch returns the named branch of the remote. Returns (nil, nil) if not found.
	GetBranch(ctx context.Context, name string) (*models.Branch, error)

	// UpdateBranch moves or creates a remote branch. An empty expectedTip means the
	// branch must not exist yet. Returns ErrBranchMoved if the tip changed.
	UpdateBranch(ctx context.Context, name, newTip, expectedTip string) error

	// SetHeadBranch points the remote HEAD at the named branch.
	SetHeadBranch(ctx context.Context, name string) error

	// Close releases the remote repository.
	Close() error
}
