package remote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
	"github.com/kilupskalvis/gitlet/internal/store"
)

// LocalClient implements Client over another repository on the local filesystem.
type LocalClient struct {
	*objectstore.FSStore
	cfg   *config.Config
	state *store.Store
}

// OpenLocal opens the repository at path, which may name either the repository's
// working directory or its .gitlet directory.
// Returns a NotFoundError if no repository exists there.
func OpenLocal(path string) (*LocalClient, error) {
	gitletPath := path
	if filepath.Base(filepath.Clean(path)) != config.GitletDir {
		gitletPath = filepath.Join(path, config.GitletDir)
	}

	info, err := os.Stat(gitletPath)
	if err != nil || !info.IsDir() {
		return nil, &models.NotFoundError{Kind: models.KindRemoteDir, Name: path}
	}

	cfg, err := config.Open(gitletPath)
	if err != nil {
		return nil, fmt.Errorf("open remote config: %w", err)
	}

	objects, err := objectstore.NewFSStore(cfg.ObjectsPath())
	if err != nil {
		return nil, fmt.Errorf("open remote objects: %w", err)
	}

	state, err := store.New(cfg.StatePath())
	if err != nil {
		return nil, fmt.Errorf("open remote state: %w", err)
	}
	if err := state.Initialize(); err != nil {
		state.Close()
		return nil, fmt.Errorf("initialize remote state: %w", err)
	}

	return &LocalClient{FSStore: objects, cfg: cfg, state: state}, nil
}

// Path returns the remote's .gitlet directory.
func (c *LocalClient) Path() string {
	return c.cfg.GitletPath()
}

// GetBranch returns a branch of the remote repository.
func (c *LocalClient) GetBranch(_ context.Context, name string) (*models.Branch, error) {
	return c.state.GetBranch(name)
}

// UpdateBranch compares the remote tip against expectedTip before moving it.
func (c *LocalClient) UpdateBranch(_ context.Context, name, newTip, expectedTip string) error {
	current, err := c.state.GetBranch(name)
	if err != nil {
		return fmt.Errorf("get remote branch: %w", err)
	}

	currentTip := ""
	if current != nil {
		currentTip = current.CommitID
	}
	if currentTip != expectedTip {
		return fmt.Errorf("branch '%s' is at %s, expected %s: %w", name, shortID(currentTip), shortID(expectedTip), ErrBranchMoved)
	}

	if current == nil {
		return c.state.CreateBranch(name, newTip)
	}
	return c.state.UpdateBranch(name, newTip)
}

// SetHeadBranch points the remote HEAD at a branch.
func (c *LocalClient) SetHeadBranch(_ context.Context, name string) error {
	return c.state.SetCurrentBranch(name)
}

// Close closes the remote state database.
func (c *LocalClient) Close() error {
	return c.state.Close()
}

func shortID(id string) string {
	if id == "" {
		return "(none)"
	}
	if len(id) > 7 {
		return id[:7]
	}
	return id
}
