package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashObject_KindIsPartOfTheID(t *testing.T) {
	payload := []byte("same bytes")
	assert.NotEqual(t, HashObject(KindBlob, payload), HashObject(KindCommit, payload))
	assert.Len(t, HashObject(KindBlob, payload), 64)
}

func TestNewBlob_Deterministic(t *testing.T) {
	a := NewBlob("wug.txt", []byte("This is a wug."))
	b := NewBlob("wug.txt", []byte("This is a wug."))
	renamed := NewBlob("notwug.txt", []byte("This is a wug."))

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.ID, a.ComputeID())
	assert.NotEqual(t, a.ID, renamed.ID)
	assert.NotEqual(t, a.ContentHash, renamed.ContentHash)
}

func TestNewCommit_IDCoversEveryField(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	base := NewCommit("msg", ts, []string{"p1"}, map[string]string{"a": "h"}, map[string]string{"a": "b"})

	variants := []*Commit{
		NewCommit("other", ts, []string{"p1"}, map[string]string{"a": "h"}, map[string]string{"a": "b"}),
		NewCommit("msg", ts.Add(time.Second), []string{"p1"}, map[string]string{"a": "h"}, map[string]string{"a": "b"}),
		NewCommit("msg", ts, []string{"p2"}, map[string]string{"a": "h"}, map[string]string{"a": "b"}),
		NewCommit("msg", ts, []string{"p1", "p2"}, map[string]string{"a": "h"}, map[string]string{"a": "b"}),
		NewCommit("msg", ts, []string{"p1"}, map[string]string{"a": "x"}, map[string]string{"a": "b"}),
	}
	for _, v := range variants {
		assert.NotEqual(t, base.ID, v.ID)
	}

	same := NewCommit("msg", ts.In(time.FixedZone("X", 3600)), []string{"p1"}, map[string]string{"a": "h"}, map[string]string{"a": "b"})
	assert.Equal(t, base.ID, same.ID, "timestamps are normalized to UTC")
}

func TestCommit_Accessors(t *testing.T) {
	root := NewCommit("initial commit", time.Unix(0, 0), nil, nil, nil)
	assert.Empty(t, root.ParentID())
	assert.False(t, root.IsMergeCommit())
	assert.Len(t, root.ShortID(), 7)

	merge := NewCommit("Merged a into b.", time.Unix(1, 0), []string{"first", "second"},
		map[string]string{"b.txt": "hb", "a.txt": "ha"},
		map[string]string{"b.txt": "blob1", "a.txt": "blob1"})
	assert.Equal(t, "first", merge.ParentID())
	assert.Equal(t, "second", merge.MergeParentID())
	assert.True(t, merge.IsMergeCommit())
	assert.True(t, merge.Tracks("a.txt"))
	assert.False(t, merge.Tracks("c.txt"))
	assert.Equal(t, []string{"a.txt", "b.txt"}, merge.Filenames())
	assert.Equal(t, []string{"blob1"}, merge.BlobIDs())
}

func TestConflictText(t *testing.T) {
	assert.Equal(t, "<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>>\n",
		string(ConflictText([]byte("ours\n"), []byte("theirs\n"))))
	assert.Equal(t, "<<<<<<< HEAD\n=======\ntheirs\n>>>>>>>\n",
		string(ConflictText(nil, []byte("theirs\n"))))
}

func TestRemoteBranchName(t *testing.T) {
	name := RemoteBranchName("origin", "master")
	assert.Equal(t, "origin/master", name)
	assert.True(t, IsRemoteBranchOf(name, "origin"))
	assert.False(t, IsRemoteBranchOf(name, "orig"))
	assert.False(t, IsRemoteBranchOf("master", "origin"))
}

func TestErrors_Matching(t *testing.T) {
	err := fmt.Errorf("checkout: %w", &NotFoundError{Kind: KindBranch, Name: "ghost"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFoundKind(err, KindBranch))
	assert.False(t, IsNotFoundKind(err, KindRemote))
	assert.Equal(t, "checkout: a branch named 'ghost' does not exist", err.Error())

	exists := &AlreadyExistsError{Kind: KindRemote, Name: "origin"}
	assert.ErrorIs(t, exists, ErrAlreadyExists)
	assert.Equal(t, "a remote named 'origin' already exists", exists.Error())

	assert.False(t, IsNotFoundKind(ErrNoChanges, KindFile))
}
