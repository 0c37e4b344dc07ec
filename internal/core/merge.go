package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
)

// Merge merges the named branch into the current branch.
// Conflicts are written into the working tree and reported in the result; the merge
// commit is created regardless.
func Merge(ctx context.Context, r *Repo, branchName string) (*models.MergeResult, error) {
	// Step 1: No pending staged changes
	dirty, err := HasStagedChanges(r)
	if err != nil {
		return nil, err
	}
	if dirty {
		return nil, models.ErrUncommittedChanges
	}

	// Step 2: Resolve target branch
	target, err := r.Store.GetBranch(branchName)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, &models.NotFoundError{Kind: models.KindBranch, Name: branchName}
	}

	head, err := r.head()
	if err != nil {
		return nil, err
	}
	if branchName == head.BranchName {
		return nil, models.ErrSelfMergeRejected
	}

	ours, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}
	theirs, err := r.commit(ctx, target.CommitID)
	if err != nil {
		return nil, err
	}

	// Step 3: Find merge base
	splitID, err := FindSplitPoint(ctx, r.Objects, ours.ID, theirs.ID)
	if err != nil {
		return nil, err
	}
	if splitID == theirs.ID {
		return nil, models.ErrAncestorRejected
	}
	if splitID == ours.ID {
		return fastForward(ctx, r, head.BranchName, ours, theirs)
	}

	split, err := r.commit(ctx, splitID)
	if err != nil {
		return nil, err
	}

	// Step 4: Plan, then check the plan against the working tree before touching anything
	plan := planMerge(split, ours, theirs)
	writes, err := loadMergeContent(ctx, r, ours, theirs, plan)
	if err != nil {
		return nil, err
	}
	if err := checkUntracked(r, ours, writes); err != nil {
		return nil, err
	}

	// Step 5: Apply
	result, err := applyMerge(r, ours, plan, writes)
	if err != nil {
		return nil, err
	}
	result.SplitPoint = splitID

	message := fmt.Sprintf("Merged %s into %s.", branchName, head.BranchName)
	commit, err := finalizeCommit(ctx, r, message, []string{ours.ID, theirs.ID}, true)
	if err != nil {
		return nil, fmt.Errorf("create merge commit: %w", err)
	}
	result.MergeCommit = commit

	r.Logger.Info("merged branch",
		"branch", branchName,
		"into", head.BranchName,
		"split", splitID[:7],
		"commit", commit.ShortID(),
		"conflicts", len(result.Conflicts))
	return result, nil
}

// fastForward moves the current branch to a descendant commit without a merge commit.
func fastForward(ctx context.Context, r *Repo, branchName string, ours, theirs *models.Commit) (*models.MergeResult, error) {
	restored, err := restoreCommit(ctx, r, ours, theirs)
	if err != nil {
		return nil, fmt.Errorf("failed to fast-forward: %w", err)
	}
	if err := r.Store.UpdateBranch(branchName, theirs.ID); err != nil {
		return nil, err
	}
	if err := r.Store.ClearStaging(); err != nil {
		return nil, err
	}

	r.Logger.Info("fast-forwarded branch", "branch", branchName, "to", theirs.ShortID())

	result := &models.MergeResult{FastForward: true, SplitPoint: ours.ID, FilesDeleted: restored.FilesRemoved}
	for _, name := range theirs.Filenames() {
		switch hash, ok := ours.Files[name]; {
		case !ok:
			result.FilesAdded++
		case hash != theirs.Files[name]:
			result.FilesUpdated++
		}
	}
	return result, nil
}

// splitMark is traversal-scoped bookkeeping for one commit during split-point search.
type splitMark struct {
	visits int
	dist   [2]int // BFS distance from the head tip and the other tip
}

// FindSplitPoint returns the best common ancestor of two commits.
// Every commit reachable from both tips is a candidate; candidates that are ancestors
// of another candidate are discarded. Among the rest the one closest to headID wins,
// then the one closest to otherID, then the smallest id.
func FindSplitPoint(ctx context.Context, objects objectstore.Store, headID, otherID string) (string, error) {
	marks := make(map[string]*splitMark)

	for side, tip := range []string{headID, otherID} {
		type entry struct {
			id   string
			dist int
		}
		visited := make(map[string]bool)
		queue := []entry{{tip, 0}}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			if visited[current.id] {
				continue
			}
			visited[current.id] = true

			m := marks[current.id]
			if m == nil {
				m = &splitMark{}
				marks[current.id] = m
			}
			m.visits++
			m.dist[side] = current.dist

			commit, err := objects.GetCommit(ctx, current.id)
			if err != nil {
				return "", fmt.Errorf("walk %s: %w", current.id, err)
			}
			for _, p := range commit.ParentIDs {
				queue = append(queue, entry{p, current.dist + 1})
			}
		}
	}

	var candidates []string
	for id, m := range marks {
		if m.visits == 2 {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no common ancestor between %s and %s", headID, otherID)
	}
	sort.Strings(candidates)

	dominated, err := ancestorCandidates(ctx, objects, candidates, marks)
	if err != nil {
		return "", err
	}

	best := ""
	for _, id := range candidates {
		if dominated[id] {
			continue
		}
		if best == "" || closer(marks[id], marks[best]) {
			best = id
		}
	}
	return best, nil
}

// ancestorCandidates marks every candidate that is a proper ancestor of another candidate.
// All ancestors of a common ancestor are themselves common ancestors, so the walk stays
// inside marks.
func ancestorCandidates(ctx context.Context, objects objectstore.Store, candidates []string, marks map[string]*splitMark) (map[string]bool, error) {
	dominated := make(map[string]bool)
	expanded := make(map[string]bool)

	for _, c := range candidates {
		if dominated[c] {
			continue
		}
		queue := []string{c}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			if expanded[id] {
				continue
			}
			expanded[id] = true

			commit, err := objects.GetCommit(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("walk %s: %w", id, err)
			}
			for _, p := range commit.ParentIDs {
				if m := marks[p]; m != nil && m.visits == 2 {
					dominated[p] = true
				}
				queue = append(queue, p)
			}
		}
	}
	return dominated, nil
}

func closer(a, b *splitMark) bool {
	if a.dist[0] != b.dist[0] {
		return a.dist[0] < b.dist[0]
	}
	return a.dist[1] < b.dist[1]
}

type mergeActionKind int

const (
	actionTakeOther mergeActionKind = iota
	actionDelete
	actionConflict
)

// mergeAction is one planned change to the working tree.
type mergeAction struct {
	Filename string
	Kind     mergeActionKind
	Conflict models.MergeConflictType
}

// planMerge decides the outcome for every file in the union of the three commits.
// Files whose outcome is "keep head" produce no action.
func planMerge(split, head, other *models.Commit) []mergeAction {
	names := make(map[string]bool)
	for _, c := range []*models.Commit{split, head, other} {
		for name := range c.Files {
			names[name] = true
		}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	var plan []mergeAction
	for _, name := range sorted {
		s, inSplit := split.Files[name]
		h, inHead := head.Files[name]
		o, inOther := other.Files[name]

		switch {
		case inSplit && inHead && inOther:
			headModified, otherModified := h != s, o != s
			switch {
			case !headModified && otherModified:
				plan = append(plan, mergeAction{Filename: name, Kind: actionTakeOther})
			case headModified && otherModified && h != o:
				plan = append(plan, mergeAction{Filename: name, Kind: actionConflict, Conflict: models.ConflictModifyModify})
			}

		case !inSplit && !inHead && inOther:
			plan = append(plan, mergeAction{Filename: name, Kind: actionTakeOther})

		case !inSplit && inHead && inOther:
			if h != o {
				plan = append(plan, mergeAction{Filename: name, Kind: actionConflict, Conflict: models.ConflictAddAdd})
			}

		case inSplit && inHead && !inOther:
			if h == s {
				plan = append(plan, mergeAction{Filename: name, Kind: actionDelete})
			} else {
				plan = append(plan, mergeAction{Filename: name, Kind: actionConflict, Conflict: models.ConflictModifyDelete})
			}

		case inSplit && !inHead && inOther:
			// Unchanged in other: stays absent, and an untracked working file of that name is left alone.
			if o != s {
				plan = append(plan, mergeAction{Filename: name, Kind: actionConflict, Conflict: models.ConflictDeleteModify})
			}
		}
	}
	return plan
}

// loadMergeContent reads the bytes each write action will produce.
func loadMergeContent(ctx context.Context, r *Repo, head, other *models.Commit, plan []mergeAction) (map[string][]byte, error) {
	writes := make(map[string][]byte)
	for _, action := range plan {
		switch action.Kind {
		case actionTakeOther:
			content, err := r.fileContent(ctx, other, action.Filename)
			if err != nil {
				return nil, err
			}
			writes[action.Filename] = content

		case actionConflict:
			var ours, theirs []byte
			var err error
			if head.Tracks(action.Filename) {
				if ours, err = r.fileContent(ctx, head, action.Filename); err != nil {
					return nil, err
				}
			}
			if other.Tracks(action.Filename) {
				if theirs, err = r.fileContent(ctx, other, action.Filename); err != nil {
					return nil, err
				}
			}
			writes[action.Filename] = models.ConflictText(ours, theirs)
		}
	}
	return writes, nil
}

// applyMerge writes and stages the planned changes.
func applyMerge(r *Repo, head *models.Commit, plan []mergeAction, writes map[string][]byte) (*models.MergeResult, error) {
	result := &models.MergeResult{}

	for _, action := range plan {
		name := action.Filename
		switch action.Kind {
		case actionDelete:
			content, err := r.Work.Read(name)
			if err != nil && !models.IsNotFoundKind(err, models.KindFile) {
				return nil, err
			}
			if err := r.Work.Remove(name); err != nil {
				return nil, err
			}
			if err := r.Store.StageRemoval(name, content); err != nil {
				return nil, err
			}
			result.FilesDeleted++

		case actionTakeOther, actionConflict:
			if err := r.Work.Write(name, writes[name]); err != nil {
				return nil, err
			}
			if err := r.Store.StageAddition(name, writes[name]); err != nil {
				return nil, err
			}
			if action.Kind == actionConflict {
				result.Conflicts = append(result.Conflicts, &models.MergeConflict{Filename: name, Type: action.Conflict})
			} else if head.Tracks(name) {
				result.FilesUpdated++
			} else {
				result.FilesAdded++
			}
		}
	}
	return result, nil
}
