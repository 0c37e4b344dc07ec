package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
	"golang.org/x/sync/errgroup"
)

// TransferProgress is called during push and fetch to report progress.
type TransferProgress func(phase string, current, total int)

// transferStats counts the objects copied by transferObjects.
type transferStats struct {
	Commits int
	Blobs   int
}

// transferObjects copies every commit reachable from tip that dst lacks, plus the blobs
// those commits reference. The walk stops at commits dst already holds and at stopAt.
// Blobs are copied first, then commits parents-first, so dst never holds a commit
// whose ancestors or blobs are missing.
func transferObjects(ctx context.Context, src, dst objectstore.Store, tip, stopAt string, workers int, progress TransferProgress) (*transferStats, error) {
	if progress == nil {
		progress = func(string, int, int) {}
	}

	// Phase 1: find missing commits
	progress("negotiating", 0, 0)
	missing := make(map[string]*models.Commit)
	visited := make(map[string]bool)
	queue := []string{tip}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if id == "" || visited[id] {
			continue
		}
		visited[id] = true
		if id == stopAt {
			continue
		}

		has, err := dst.HasCommit(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check commit %s: %w", id, err)
		}
		if has {
			continue
		}

		commit, err := src.GetCommit(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", id, err)
		}
		missing[id] = commit
		queue = append(queue, commit.ParentIDs...)
	}

	stats := &transferStats{}
	if len(missing) == 0 {
		return stats, nil
	}

	// Phase 2: copy blobs the destination lacks
	blobSet := make(map[string]bool)
	for _, c := range missing {
		for _, id := range c.BlobIDs() {
			blobSet[id] = true
		}
	}
	var blobs []string
	for id := range blobSet {
		has, err := dst.HasBlob(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check blob %s: %w", id, err)
		}
		if !has {
			blobs = append(blobs, id)
		}
	}
	sort.Strings(blobs)

	if len(blobs) > 0 {
		if err := copyBlobs(ctx, src, dst, blobs, workers, progress); err != nil {
			return nil, err
		}
	}
	stats.Blobs = len(blobs)

	// Phase 3: copy commits in topological order (parents before children)
	ordered := parentsFirst(missing)
	for i, c := range ordered {
		progress("copying commits", i+1, len(ordered))
		if _, err := dst.PutCommit(ctx, c); err != nil {
			return nil, fmt.Errorf("copy commit %s: %w", c.ID, err)
		}
	}
	stats.Commits = len(ordered)

	return stats, nil
}

// copyBlobs copies blobs in parallel with bounded concurrency.
func copyBlobs(ctx context.Context, src, dst objectstore.Store, ids []string, workers int, progress TransferProgress) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, id := range ids {
		progress("copying blobs", i+1, len(ids))
		g.Go(func() error {
			blob, err := src.GetBlob(ctx, id)
			if err != nil {
				return fmt.Errorf("read blob %s: %w", id, err)
			}
			if _, err := dst.PutBlob(ctx, blob); err != nil {
				return fmt.Errorf("copy blob %s: %w", id, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// parentsFirst orders commits so every commit follows those of its parents that are in the set.
func parentsFirst(commits map[string]*models.Commit) []*models.Commit {
	ids := make([]string, 0, len(commits))
	for id := range commits {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type frame struct {
		id       string
		expanded bool
	}
	done := make(map[string]bool, len(commits))
	ordered := make([]*models.Commit, 0, len(commits))

	for _, root := range ids {
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if done[top.id] {
				continue
			}
			if top.expanded {
				done[top.id] = true
				ordered = append(ordered, commits[top.id])
				continue
			}

			stack = append(stack, frame{id: top.id, expanded: true})
			for _, p := range commits[top.id].ParentIDs {
				if _, ok := commits[p]; ok && !done[p] {
					stack = append(stack, frame{id: p})
				}
			}
		}
	}
	return ordered
}

// isAncestor reports whether ancestorID is reachable from descendantID through parent links.
// A commit counts as its own ancestor.
func isAncestor(ctx context.Context, objects objectstore.Store, ancestorID, descendantID string) (bool, error) {
	visited := make(map[string]bool)
	queue := []string{descendantID}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if id == ancestorID {
			return true, nil
		}
		if visited[id] {
			continue
		}
		visited[id] = true

		commit, err := objects.GetCommit(ctx, id)
		if err != nil {
			return false, fmt.Errorf("walk %s: %w", id, err)
		}
		queue = append(queue, commit.ParentIDs...)
	}
	return false, nil
}
