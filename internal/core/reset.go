package core

import (
	"context"
	"fmt"
)

// Reset checks out every file of the given commit, moves the current branch to it
// and clears the staging area.
func Reset(ctx context.Context, r *Repo, commitRef string) (*CheckoutResult, error) {
	id, err := r.Objects.ResolveCommitPrefix(ctx, commitRef)
	if err != nil {
		return nil, err
	}

	head, err := r.head()
	if err != nil {
		return nil, err
	}
	from, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}
	to, err := r.commit(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := restoreCommit(ctx, r, from, to)
	if err != nil {
		return nil, err
	}

	if err := r.Store.UpdateBranch(head.BranchName, to.ID); err != nil {
		return nil, fmt.Errorf("move branch: %w", err)
	}
	if err := r.Store.ClearStaging(); err != nil {
		return nil, fmt.Errorf("clear staging: %w", err)
	}

	result.BranchName = head.BranchName
	r.Logger.Debug("reset branch", "branch", head.BranchName, "commit", to.ShortID())
	return result, nil
}
