package core

import (
	"context"
	"fmt"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// Log returns the first-parent history from HEAD to the root commit, newest first.
func Log(ctx context.Context, r *Repo) ([]*models.Commit, error) {
	current, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}

	var history []*models.Commit
	for current != nil {
		history = append(history, current)
		parentID := current.ParentID()
		if parentID == "" {
			break
		}
		current, err = r.commit(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("walk history: %w", err)
		}
	}
	return history, nil
}

// GlobalLog returns every commit in the object store, ordered by id.
func GlobalLog(ctx context.Context, r *Repo) ([]*models.Commit, error) {
	ids, err := r.Objects.ListCommitIDs(ctx)
	if err != nil {
		return nil, err
	}

	commits := make([]*models.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := r.commit(ctx, id)
		if err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// Find returns the ids of all commits whose message is exactly message.
func Find(ctx context.Context, r *Repo, message string) ([]string, error) {
	commits, err := GlobalLog(ctx, r)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range commits {
		if c.Message == message {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		return nil, &models.NotFoundError{Kind: models.KindMessage, Name: message}
	}
	return ids, nil
}
