package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// ListBranches returns all branches with the current branch name
func ListBranches(r *Repo) ([]*models.Branch, string, error) {
	branches, err := r.Store.ListBranches()
	if err != nil {
		return nil, "", err
	}

	head, err := r.head()
	if err != nil {
		return nil, "", err
	}

	return branches, head.BranchName, nil
}

// CreateBranch creates a new branch at the current HEAD commit. HEAD does not move.
func CreateBranch(ctx context.Context, r *Repo, name string) (*models.Branch, error) {
	if err := validateRefName(name); err != nil {
		return nil, err
	}
	remoteName, err := trackingRemote(r, name)
	if err != nil {
		return nil, err
	}
	if remoteName != "" {
		return nil, fmt.Errorf("branch '%s' is inside remote '%s': %w", name, remoteName, models.ErrReservedBranchName)
	}

	head, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.Store.CreateBranch(name, head.ID); err != nil {
		return nil, err
	}

	r.Logger.Debug("created branch", "branch", name, "commit", head.ShortID())
	return r.Store.GetBranch(name)
}

// DeleteBranch removes a branch pointer. Commits stay in the object store.
func DeleteBranch(r *Repo, name string) error {
	head, err := r.head()
	if err != nil {
		return err
	}

	exists, err := r.Store.BranchExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return &models.NotFoundError{Kind: models.KindBranch, Name: name}
	}
	if name == head.BranchName {
		return models.ErrCurrentBranch
	}

	return r.Store.DeleteBranch(name)
}

// ResolveCommit resolves a branch name, full commit id or unique id prefix to a commit id.
func ResolveCommit(ctx context.Context, r *Repo, ref string) (string, error) {
	branch, err := r.Store.GetBranch(ref)
	if err != nil {
		return "", err
	}
	if branch != nil {
		return branch.CommitID, nil
	}
	return r.Objects.ResolveCommitPrefix(ctx, ref)
}

// validateRefName rejects names that cannot be used as branch or remote names.
func validateRefName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if name == "HEAD" {
		return fmt.Errorf("'HEAD' is not a valid name")
	}
	if strings.ContainsAny(name, " \t\n\r:") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid name '%s'", name)
	}
	return nil
}
