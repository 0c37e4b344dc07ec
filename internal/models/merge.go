package models

// MergeConflictType identifies the type of merge conflict
type MergeConflictType string

const (
	ConflictModifyModify MergeConflictType = "modify-modify" // Both modified differently
	ConflictDeleteModify MergeConflictType = "delete-modify" // We deleted, they modified
	ConflictModifyDelete MergeConflictType = "modify-delete" // We modified, they deleted
	ConflictAddAdd       MergeConflictType = "add-add"       // Both added with different content
)

// Conflict marker lines written into a conflicted working file.
const (
	ConflictMarkerOurs   = "<<<<<<< HEAD\n"
	ConflictMarkerSep    = "=======\n"
	ConflictMarkerTheirs = ">>>>>>>\n"
)

// MergeConflict represents a file that could not be reconciled automatically
type MergeConflict struct {
	Filename string
	Type     MergeConflictType
}

// MergeResult contains the outcome of a merge operation
type MergeResult struct {
	FastForward  bool             // Branch pointer advanced, no merge commit
	MergeCommit  *Commit          // The merge commit (nil for fast-forward)
	SplitPoint   string           // Commit ID of the merge base
	Conflicts    []*MergeConflict // Conflicts written into the working tree
	FilesAdded   int              // Files taken from the other branch that head lacked
	FilesUpdated int              // Files whose content changed
	FilesDeleted int              // Files removed by the merge
}

// HasConflicts reports whether the merge left conflict markers in the working tree
func (r *MergeResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// ConflictText frames two versions of a file with conflict markers.
// A missing side is rendered as empty content.
func ConflictText(ours, theirs []byte) []byte {
	out := make([]byte, 0, len(ConflictMarkerOurs)+len(ours)+len(ConflictMarkerSep)+len(theirs)+len(ConflictMarkerTheirs))
	out = append(out, ConflictMarkerOurs...)
	out = append(out, ours...)
	out = append(out, ConflictMarkerSep...)
	out = append(out, theirs...)
	out = append(out, ConflictMarkerTheirs...)
	return out
}
