package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// CreateCommit records the staged changes as a new commit on the current branch.
func CreateCommit(ctx context.Context, r *Repo, message string) (*models.Commit, error) {
	head, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}
	return finalizeCommit(ctx, r, message, []string{head.ID}, false)
}

// finalizeCommit builds a commit from the first parent's files and the staging area,
// persists it and any new blobs, advances the current branch and clears staging.
// Merge commits pass two parents and allowEmpty.
func finalizeCommit(ctx context.Context, r *Repo, message string, parentIDs []string, allowEmpty bool) (*models.Commit, error) {
	if strings.TrimSpace(message) == "" {
		return nil, models.ErrEmptyMessage
	}

	additions, err := r.Store.ListAdditions()
	if err != nil {
		return nil, fmt.Errorf("list staged additions: %w", err)
	}
	removals, err := r.Store.ListRemovals()
	if err != nil {
		return nil, fmt.Errorf("list staged removals: %w", err)
	}
	if len(additions) == 0 && len(removals) == 0 && !allowEmpty {
		return nil, models.ErrNoChanges
	}

	parent, err := r.commit(ctx, parentIDs[0])
	if err != nil {
		return nil, err
	}

	files := make(map[string]string, len(parent.Files)+len(additions))
	blobs := make(map[string]string, len(parent.Blobs)+len(additions))
	for name, hash := range parent.Files {
		files[name] = hash
	}
	for name, id := range parent.Blobs {
		blobs[name] = id
	}

	existing := make(map[string]bool, len(parent.Blobs))
	for _, id := range parent.BlobIDs() {
		existing[id] = true
	}

	var newBlobs int
	for _, staged := range additions {
		blob := models.NewBlob(staged.Filename, staged.Content)
		files[staged.Filename] = blob.ContentHash
		blobs[staged.Filename] = blob.ID
		if existing[blob.ID] {
			continue
		}
		if _, err := r.Objects.PutBlob(ctx, blob); err != nil {
			return nil, fmt.Errorf("store blob for %s: %w", staged.Filename, err)
		}
		existing[blob.ID] = true
		newBlobs++
	}
	for _, staged := range removals {
		delete(files, staged.Filename)
		delete(blobs, staged.Filename)
	}

	commit := models.NewCommit(message, time.Now(), parentIDs, files, blobs)
	if _, err := r.Objects.PutCommit(ctx, commit); err != nil {
		return nil, fmt.Errorf("store commit: %w", err)
	}

	head, err := r.head()
	if err != nil {
		return nil, err
	}
	if err := r.Store.UpdateBranch(head.BranchName, commit.ID); err != nil {
		return nil, fmt.Errorf("advance branch: %w", err)
	}
	if err := r.Store.ClearStaging(); err != nil {
		return nil, fmt.Errorf("clear staging: %w", err)
	}

	r.Logger.Debug("commit created",
		"id", commit.ShortID(),
		"branch", head.BranchName,
		"parents", len(parentIDs),
		"files", len(files),
		"new_blobs", newBlobs)
	return commit, nil
}
