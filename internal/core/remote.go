package core

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/remote"
)

// AddRemote validates and stores a new remote.
// The path is stored as given; relative paths are resolved against the working directory on use.
func AddRemote(r *Repo, name, path string) error {
	if err := validateRemoteName(name); err != nil {
		return err
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("remote path cannot be empty")
	}

	branches, err := r.Store.ListBranches()
	if err != nil {
		return fmt.Errorf("list branches: %w", err)
	}
	for _, b := range branches {
		if models.IsRemoteBranchOf(b.Name, name) {
			return fmt.Errorf("branch '%s' already uses the prefix '%s/': %w", b.Name, name, models.ErrReservedBranchName)
		}
	}

	if err := r.Store.AddRemote(name, path); err != nil {
		return err
	}
	r.Logger.Debug("added remote", "remote", name, "path", path)
	return nil
}

// RemoveRemote removes a remote and its remote-tracking branches.
// It refuses while HEAD is on one of those branches.
func RemoveRemote(r *Repo, name string) error {
	head, err := r.head()
	if err != nil {
		return err
	}
	if models.IsRemoteBranchOf(head.BranchName, name) {
		return fmt.Errorf("HEAD is on '%s': %w", head.BranchName, models.ErrCurrentBranch)
	}
	return r.Store.RemoveRemote(name)
}

// trackingRemote returns the configured remote whose tracking ref namespace
// contains branchName, or "" for a local branch name.
func trackingRemote(r *Repo, branchName string) (string, error) {
	prefix, _, ok := strings.Cut(branchName, "/")
	if !ok {
		return "", nil
	}
	rm, err := r.Store.GetRemote(prefix)
	if err != nil {
		return "", fmt.Errorf("get remote: %w", err)
	}
	if rm == nil {
		return "", nil
	}
	return rm.Name, nil
}

// ListRemotes returns all configured remotes.
func ListRemotes(r *Repo) ([]*models.Remote, error) {
	remotes, err := r.Store.ListRemotes()
	if err != nil {
		return nil, fmt.Errorf("list remotes: %w", err)
	}
	return remotes, nil
}

// OpenRemote opens the repository a configured remote points at, waiting briefly
// if another process holds it. The caller must Close the client.
func OpenRemote(ctx context.Context, r *Repo, name string) (*remote.LocalClient, error) {
	rm, err := r.Store.GetRemote(name)
	if err != nil {
		return nil, fmt.Errorf("get remote: %w", err)
	}
	if rm == nil {
		return nil, &models.NotFoundError{Kind: models.KindRemote, Name: name}
	}

	path := rm.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Work.Root(), path)
	}
	return remote.Open(ctx, path, nil)
}

// validateRemoteName checks that a remote name can prefix tracking refs.
func validateRemoteName(name string) error {
	if err := validateRefName(name); err != nil {
		return err
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("invalid remote name '%s': must not contain '/'", name)
	}
	return nil
}
