package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/remote"
)

// FetchOptions configures a fetch operation.
type FetchOptions struct {
	RemoteName string
	Branch     string
}

// FetchResult contains the outcome of a fetch operation.
type FetchResult struct {
	CommitsFetched int
	BlobsFetched   int
	UpToDate       bool
	TrackingBranch string // local ref "<remote>/<branch>"
	RemoteTip      string
	PreviousTip    string // tracking ref tip before the fetch, "" if it did not exist
}

// PullOptions configures a pull operation.
type PullOptions struct {
	RemoteName string
	Branch     string
}

// PullResult contains the outcome of a pull operation.
type PullResult struct {
	FetchResult
	Merge    *models.MergeResult // nil when nothing needed merging
	UpToDate bool
}

// Fetch copies a remote branch's history into the local object store and points the
// tracking ref "<remote>/<branch>" at it. HEAD and local branches are not modified.
func Fetch(ctx context.Context, r *Repo, client remote.Client, opts FetchOptions, progress TransferProgress) (*FetchResult, error) {
	remoteBranch, err := client.GetBranch(ctx, opts.Branch)
	if err != nil {
		return nil, fmt.Errorf("get remote branch: %w", err)
	}
	if remoteBranch == nil {
		return nil, &models.NotFoundError{Kind: models.KindRemoteBranch, Name: opts.Branch}
	}

	trackingRef := models.RemoteBranchName(opts.RemoteName, opts.Branch)
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	if head.BranchName == trackingRef {
		return nil, fmt.Errorf("HEAD is on '%s': %w", trackingRef, models.ErrCurrentBranch)
	}

	previousTip := ""
	tracking, err := r.Store.GetBranch(trackingRef)
	if err != nil {
		return nil, fmt.Errorf("get remote-tracking branch: %w", err)
	}
	if tracking != nil {
		previousTip = tracking.CommitID
	}

	result := &FetchResult{
		TrackingBranch: trackingRef,
		RemoteTip:      remoteBranch.CommitID,
		PreviousTip:    previousTip,
	}

	has, err := r.Objects.HasCommit(ctx, remoteBranch.CommitID)
	if err != nil {
		return nil, err
	}
	if previousTip == remoteBranch.CommitID && has {
		result.UpToDate = true
		return result, nil
	}

	stats, err := transferObjects(ctx, client, r.Objects, remoteBranch.CommitID, "", r.Config.TransferWorkers, progress)
	if err != nil {
		return nil, fmt.Errorf("fetch objects: %w", err)
	}
	result.CommitsFetched = stats.Commits
	result.BlobsFetched = stats.Blobs

	if err := r.Store.SetBranch(trackingRef, remoteBranch.CommitID); err != nil {
		return nil, fmt.Errorf("update remote-tracking branch: %w", err)
	}

	r.Logger.Info("fetched",
		"remote", opts.RemoteName,
		"branch", opts.Branch,
		"commits", stats.Commits,
		"blobs", stats.Blobs)
	return result, nil
}

// Pull fetches a remote branch and merges its tracking ref into the current branch.
// A tracking ref that is already contained in HEAD is reported as up to date.
func Pull(ctx context.Context, r *Repo, client remote.Client, opts PullOptions, progress TransferProgress) (*PullResult, error) {
	dirty, err := HasStagedChanges(r)
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, models.ErrUncommittedChanges
	}

	fetched, err := Fetch(ctx, r, client, FetchOptions(opts), progress)
	if err != nil {
		return nil, err
	}

	result := &PullResult{FetchResult: *fetched}

	merged, err := Merge(ctx, r, fetched.TrackingBranch)
	if errors.Is(err, models.ErrAncestorRejected) {
		result.UpToDate = true
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	result.Merge = merged
	return result, nil
}
