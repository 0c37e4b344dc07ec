package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected conditions.
var (
	ErrNotInitialized       = errors.New("not in an initialized gitlet directory")
	ErrAlreadyInitialized   = errors.New("a gitlet version-control system already exists in the current directory")
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrNoChanges            = errors.New("no changes added to the commit")
	ErrEmptyMessage         = errors.New("please enter a commit message")
	ErrNothingToRemove      = errors.New("no reason to remove the file")
	ErrUntrackedObstruction = errors.New("there is an untracked file in the way; delete it, or add and commit it first")
	ErrUncommittedChanges   = errors.New("you have uncommitted changes")
	ErrSelfMergeRejected    = errors.New("cannot merge a branch with itself")
	ErrAncestorRejected     = errors.New("given branch is an ancestor of the current branch")
	ErrFastForwardOnly      = errors.New("please pull down remote changes before pushing")
	ErrCurrentBranch        = errors.New("cannot remove the current branch")
	ErrAlreadyOnBranch      = errors.New("no need to checkout the current branch")
	ErrStorageCorruption    = errors.New("storage corruption")
	ErrObjectNotFound       = errors.New("object not found")
	ErrAmbiguousID          = errors.New("ambiguous commit id")
	ErrTrackingBranch       = errors.New("cannot check out a remote-tracking branch; merge it into a local branch instead")
	ErrReservedBranchName   = errors.New("name is reserved for remote-tracking branches")
)

// NotFoundKind names what could not be found.
type NotFoundKind string

const (
	KindBlobObject   NotFoundKind = "blob"
	KindCommitObject NotFoundKind = "commit"
	KindBranch       NotFoundKind = "branch"
	KindRemote       NotFoundKind = "remote"
	KindRemoteDir    NotFoundKind = "remote directory"
	KindRemoteBranch NotFoundKind = "remote branch"
	KindFile         NotFoundKind = "file"
	KindFileInCommit NotFoundKind = "file in commit"
	KindMessage      NotFoundKind = "message"
)

// NotFoundError reports a missing blob, commit, branch, remote or file.
type NotFoundError struct {
	Kind NotFoundKind
	Name string
}

func (e *NotFoundError) Error() string {
	switch e.Kind {
	case KindCommitObject:
		return fmt.Sprintf("no commit with id '%s' exists", e.Name)
	case KindBranch:
		return fmt.Sprintf("a branch named '%s' does not exist", e.Name)
	case KindRemote:
		return fmt.Sprintf("a remote named '%s' does not exist", e.Name)
	case KindRemoteDir:
		return fmt.Sprintf("remote directory '%s' not found", e.Name)
	case KindRemoteBranch:
		return fmt.Sprintf("that remote does not have branch '%s'", e.Name)
	case KindFile:
		return fmt.Sprintf("file '%s' does not exist", e.Name)
	case KindFileInCommit:
		return fmt.Sprintf("file '%s' does not exist in that commit", e.Name)
	case KindMessage:
		return fmt.Sprintf("found no commit with message '%s'", e.Name)
	}
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError reports a branch or remote name that is taken.
type AlreadyExistsError struct {
	Kind NotFoundKind
	Name string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("a %s named '%s' already exists", e.Kind, e.Name)
}

// Is matches ErrAlreadyExists.
func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// IsNotFoundKind reports whether err is a NotFoundError of the given kind.
func IsNotFoundKind(err error, kind NotFoundKind) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Kind == kind
}
