package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// Add stages the working version of filename.
// If it matches the version tracked by HEAD, any pending change for the file is dropped instead.
func Add(ctx context.Context, r *Repo, filename string) error {
	content, err := r.Work.Read(filename)
	if err != nil {
		return err
	}

	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}

	// Re-adding a removed file cancels the removal
	removed, err := r.Store.IsStagedForRemoval(filename)
	if err != nil {
		return err
	}
	if removed {
		if err := r.Store.UnstageRemoval(filename); err != nil {
			return err
		}
		r.Logger.Debug("cancelled staged removal", "file", filename)
	}

	if tracked, ok := head.Files[filename]; ok && tracked == models.ContentHash(filename, content) {
		if err := r.Store.UnstageAddition(filename); err != nil {
			return err
		}
		r.Logger.Debug("file matches HEAD, staging cleared", "file", filename)
		return nil
	}

	if err := r.Store.StageAddition(filename, content); err != nil {
		return err
	}

	r.Logger.Debug("staged addition", "file", filename, "bytes", len(content))
	return nil
}

// Remove unstages a pending addition, or stages the removal of a file tracked by HEAD
// and deletes it from the working tree.
func Remove(ctx context.Context, r *Repo, filename string) error {
	_, staged, err := r.Store.GetStagedAddition(filename)
	if err != nil {
		return err
	}
	if staged {
		return r.Store.UnstageAddition(filename)
	}

	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	if !head.Tracks(filename) {
		return models.ErrNothingToRemove
	}

	content, err := r.fileContent(ctx, head, filename)
	if err != nil {
		return fmt.Errorf("read tracked %s: %w", filename, err)
	}
	if err := r.Store.StageRemoval(filename, content); err != nil {
		return err
	}
	if err := r.Work.Remove(filename); err != nil {
		return err
	}

	r.Logger.Debug("staged removal", "file", filename)
	return nil
}
