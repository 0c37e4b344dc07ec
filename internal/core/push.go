package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/remote"
)

// PushOptions configures a push operation.
type PushOptions struct {
	RemoteName string
	Branch     string
}

// PushResult contains the outcome of a push operation.
type PushResult struct {
	CommitsPushed int
	BlobsPushed   int
	UpToDate      bool
	BranchCreated bool
	RemoteTip     string // remote branch tip after the push
}

// Push copies the current branch's history to a remote branch and moves the remote
// branch and HEAD to the local HEAD commit. The remote tip must be an ancestor of
// local HEAD.
func Push(ctx context.Context, r *Repo, client remote.Client, opts PushOptions, progress TransferProgress) (*PushResult, error) {
	local, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}

	remoteBranch, err := client.GetBranch(ctx, opts.Branch)
	if err != nil {
		return nil, fmt.Errorf("get remote branch: %w", err)
	}

	remoteTip := ""
	if remoteBranch != nil {
		remoteTip = remoteBranch.CommitID
	}

	trackingRef := models.RemoteBranchName(opts.RemoteName, opts.Branch)

	if remoteTip == local.ID {
		if err := r.Store.SetBranch(trackingRef, local.ID); err != nil {
			return nil, fmt.Errorf("update remote-tracking branch: %w", err)
		}
		return &PushResult{UpToDate: true, RemoteTip: remoteTip}, nil
	}

	// Only fast-forward pushes are allowed
	if remoteTip != "" {
		has, err := r.Objects.HasCommit(ctx, remoteTip)
		if err != nil {
			return nil, err
		}
		if !has {
			return nil, models.ErrFastForwardOnly
		}
		ok, err := isAncestor(ctx, r.Objects, remoteTip, local.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.ErrFastForwardOnly
		}
	}

	stats, err := transferObjects(ctx, r.Objects, client, local.ID, remoteTip, r.Config.TransferWorkers, progress)
	if err != nil {
		return nil, fmt.Errorf("push objects: %w", err)
	}

	progress = orNoop(progress)
	progress("updating branch", 0, 0)
	if err := client.UpdateBranch(ctx, opts.Branch, local.ID, remoteTip); err != nil {
		return nil, fmt.Errorf("update remote branch: %w", err)
	}
	if err := client.SetHeadBranch(ctx, opts.Branch); err != nil {
		return nil, fmt.Errorf("update remote HEAD: %w", err)
	}

	if err := r.Store.SetBranch(trackingRef, local.ID); err != nil {
		return nil, fmt.Errorf("update remote-tracking branch: %w", err)
	}

	r.Logger.Info("pushed",
		"remote", opts.RemoteName,
		"branch", opts.Branch,
		"commits", stats.Commits,
		"blobs", stats.Blobs,
		"tip", local.ShortID())

	return &PushResult{
		CommitsPushed: stats.Commits,
		BlobsPushed:   stats.Blobs,
		BranchCreated: remoteTip == "",
		RemoteTip:     local.ID,
	}, nil
}

func orNoop(progress TransferProgress) TransferProgress {
	if progress == nil {
		return func(string, int, int) {}
	}
	return progress
}
