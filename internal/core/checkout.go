package core

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// CheckoutResult contains the result of a branch checkout or reset
type CheckoutResult struct {
	PreviousCommit string
	TargetCommit   string
	BranchName     string
	FilesWritten   int
	FilesRemoved   int
}

// CheckoutBranch switches HEAD to another branch and replaces the working files.
func CheckoutBranch(ctx context.Context, r *Repo, name string) (*CheckoutResult, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}

	branch, err := r.Store.GetBranch(name)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, &models.NotFoundError{Kind: models.KindBranch, Name: name}
	}
	if name == head.BranchName {
		return nil, models.ErrAlreadyOnBranch
	}
	remoteName, err := trackingRemote(r, name)
	if err != nil {
		return nil, err
	}
	if remoteName != "" {
		return nil, fmt.Errorf("%s: %w", name, models.ErrTrackingBranch)
	}

	from, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}
	to, err := r.commit(ctx, branch.CommitID)
	if err != nil {
		return nil, err
	}

	result, err := restoreCommit(ctx, r, from, to)
	if err != nil {
		return nil, err
	}

	if err := r.Store.SetCurrentBranch(name); err != nil {
		return nil, fmt.Errorf("switch HEAD: %w", err)
	}
	if err := r.Store.ClearStaging(); err != nil {
		return nil, fmt.Errorf("clear staging: %w", err)
	}

	result.BranchName = name
	r.Logger.Debug("checked out branch", "branch", name, "commit", to.ShortID())
	return result, nil
}

// CheckoutFile restores filename in the working tree to its version in HEAD.
func CheckoutFile(ctx context.Context, r *Repo, filename string) error {
	head, err := r.headCommit(ctx)
	if err != nil {
		return err
	}
	return checkoutFileFrom(ctx, r, head, filename)
}

// CheckoutFileAt restores filename to its version in the given commit.
// The commit may be abbreviated or named by a branch.
func CheckoutFileAt(ctx context.Context, r *Repo, commitRef, filename string) error {
	id, err := ResolveCommit(ctx, r, commitRef)
	if err != nil {
		return err
	}
	c, err := r.commit(ctx, id)
	if err != nil {
		return err
	}
	return checkoutFileFrom(ctx, r, c, filename)
}

func checkoutFileFrom(ctx context.Context, r *Repo, c *models.Commit, filename string) error {
	content, err := r.fileContent(ctx, c, filename)
	if err != nil {
		return err
	}
	return r.Work.Write(filename, content)
}

// restoreCommit makes the working tree match commit to, given that it currently reflects from.
// Nothing is written if an untracked file would be overwritten.
func restoreCommit(ctx context.Context, r *Repo, from, to *models.Commit) (*CheckoutResult, error) {
	contents := make(map[string][]byte, len(to.Files))
	for _, name := range to.Filenames() {
		content, err := r.fileContent(ctx, to, name)
		if err != nil {
			return nil, err
		}
		contents[name] = content
	}

	if err := checkUntracked(r, from, contents); err != nil {
		return nil, err
	}

	result := &CheckoutResult{PreviousCommit: from.ID, TargetCommit: to.ID}
	for _, name := range to.Filenames() {
		if err := r.Work.Write(name, contents[name]); err != nil {
			return nil, err
		}
		result.FilesWritten++
	}
	for _, name := range from.Filenames() {
		if to.Tracks(name) {
			continue
		}
		if err := r.Work.Remove(name); err != nil {
			return nil, err
		}
		result.FilesRemoved++
	}
	return result, nil
}

// checkUntracked fails if writing contents would overwrite a working file that
// the current commit does not track.
func checkUntracked(r *Repo, current *models.Commit, contents map[string][]byte) error {
	for name, content := range contents {
		if current.Tracks(name) {
			continue
		}
		exists, err := r.Work.Exists(name)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		working, err := r.Work.Read(name)
		if err != nil {
			return err
		}
		if !bytes.Equal(working, content) {
			return fmt.Errorf("%s: %w", name, models.ErrUntrackedObstruction)
		}
	}
	return nil
}
