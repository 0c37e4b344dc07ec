package core

import (
	"bytes"
	"context"
	"sort"

	"github.com/kilupskalvis/gitlet/internal/models"
)

// ModificationKind describes how an unstaged working file differs from what would be committed.
type ModificationKind string

const (
	ModificationModified ModificationKind = "modified"
	ModificationDeleted  ModificationKind = "deleted"
)

// UnstagedModification is a working file whose changes are not staged.
type UnstagedModification struct {
	Filename string
	Kind     ModificationKind
}

// StatusResult summarizes branches, the staging area and the working tree.
type StatusResult struct {
	CurrentBranch string
	Branches      []string
	Staged        []string
	Removed       []string
	Modified      []UnstagedModification
	Untracked     []string
}

// Status compares HEAD, the staging area and the working tree.
func Status(ctx context.Context, r *Repo) (*StatusResult, error) {
	head, err := r.head()
	if err != nil {
		return nil, err
	}
	commit, err := r.headCommit(ctx)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{CurrentBranch: head.BranchName}

	branches, err := r.Store.ListBranches()
	if err != nil {
		return nil, err
	}
	for _, b := range branches {
		result.Branches = append(result.Branches, b.Name)
	}

	additions, err := r.Store.ListAdditions()
	if err != nil {
		return nil, err
	}
	staged := make(map[string][]byte, len(additions))
	for _, a := range additions {
		staged[a.Filename] = a.Content
		result.Staged = append(result.Staged, a.Filename)
	}

	removals, err := r.Store.ListRemovals()
	if err != nil {
		return nil, err
	}
	removed := make(map[string]bool, len(removals))
	for _, rm := range removals {
		removed[rm.Filename] = true
		result.Removed = append(result.Removed, rm.Filename)
	}

	names, err := r.Work.List()
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true

		content, err := r.Work.Read(name)
		if err != nil {
			return nil, err
		}

		if stagedContent, ok := staged[name]; ok {
			if !bytes.Equal(stagedContent, content) {
				result.Modified = append(result.Modified, UnstagedModification{Filename: name, Kind: ModificationModified})
			}
			continue
		}

		tracked, ok := commit.Files[name]
		if !ok || removed[name] {
			result.Untracked = append(result.Untracked, name)
			continue
		}
		if tracked != models.ContentHash(name, content) {
			result.Modified = append(result.Modified, UnstagedModification{Filename: name, Kind: ModificationModified})
		}
	}

	for name := range staged {
		if !present[name] {
			result.Modified = append(result.Modified, UnstagedModification{Filename: name, Kind: ModificationDeleted})
		}
	}
	for name := range commit.Files {
		if !present[name] && !removed[name] {
			if _, ok := staged[name]; ok {
				continue
			}
			result.Modified = append(result.Modified, UnstagedModification{Filename: name, Kind: ModificationDeleted})
		}
	}
	sort.Slice(result.Modified, func(i, j int) bool {
		return result.Modified[i].Filename < result.Modified[j].Filename
	})

	return result, nil
}

// HasStagedChanges reports whether the staging area holds any addition or removal.
func HasStagedChanges(r *Repo) (bool, error) {
	n, err := r.Store.StagedCount()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
