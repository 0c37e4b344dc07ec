package core

import (
	"context"
	"testing"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommit_TwoCommitsScenario(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	first := commitFiles(t, r, "first", map[string]string{"a.txt": "x"})
	second := commitFiles(t, r, "second", map[string]string{"a.txt": "y"})

	history, err := Log(ctx, r)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
	assert.Equal(t, InitialCommitMessage, history[2].Message)

	content, err := r.fileContent(ctx, second, "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "y", string(content))
	assert.Equal(t, first.ID, second.ParentID())
}

func TestCreateCommit_EmptyMessage(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	writeFile(t, r, "a.txt", "x")
	require.NoError(t, Add(ctx, r, "a.txt"))

	_, err := CreateCommit(ctx, r, "   ")
	assert.ErrorIs(t, err, models.ErrEmptyMessage)
	assert.Equal(t, 1, stagedCount(t, r))
}

func TestCreateCommit_NoChanges(t *testing.T) {
	r := newTestRepo(t)

	_, err := CreateCommit(context.Background(), r, "nothing")
	assert.ErrorIs(t, err, models.ErrNoChanges)
}

func TestCreateCommit_AppliesStagingByName(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	parent := commitFiles(t, r, "base", map[string]string{"a.txt": "a", "b.txt": "b", "c.txt": "c"})

	writeFile(t, r, "b.txt", "b2")
	require.NoError(t, Add(ctx, r, "b.txt"))
	writeFile(t, r, "d.txt", "d")
	require.NoError(t, Add(ctx, r, "d.txt"))
	require.NoError(t, Remove(ctx, r, "c.txt"))

	c, err := CreateCommit(ctx, r, "change")
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt", "d.txt"}, c.Filenames())
	assert.Equal(t, parent.Files["a.txt"], c.Files["a.txt"])
	assert.Equal(t, parent.Blobs["a.txt"], c.Blobs["a.txt"])
	assert.NotEqual(t, parent.Files["b.txt"], c.Files["b.txt"])
	assert.Equal(t, models.ContentHash("d.txt", []byte("d")), c.Files["d.txt"])
	assert.Equal(t, 0, stagedCount(t, r))
	assert.False(t, fileExists(t, r, "c.txt"))
}

func TestCreateCommit_IDIsContentHash(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	c := commitFiles(t, r, "first", map[string]string{"a.txt": "x"})
	stored, err := r.Objects.GetCommit(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, stored.ComputeID())

	blob, err := r.Objects.GetBlob(ctx, c.Blobs["a.txt"])
	require.NoError(t, err)
	assert.Equal(t, models.NewBlob("a.txt", []byte("x")).ID, blob.ID)
}

func TestAdd_MatchingHeadIsNoOp(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	commitFiles(t, r, "first", map[string]string{"a.txt": "x"})

	require.NoError(t, Add(ctx, r, "a.txt"))
	assert.Equal(t, 0, stagedCount(t, r))

	// Stage a change, then revert the working file and add again
	writeFile(t, r, "a.txt", "changed")
	require.NoError(t, Add(ctx, r, "a.txt"))
	assert.Equal(t, 1, stagedCount(t, r))

	writeFile(t, r, "a.txt", "x")
	require.NoError(t, Add(ctx, r, "a.txt"))
	assert.Equal(t, 0, stagedCount(t, r))
}

func TestAdd_ReplacesStagedVersion(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	writeFile(t, r, "a.txt", "v1")
	require.NoError(t, Add(ctx, r, "a.txt"))
	writeFile(t, r, "a.txt", "v2")
	require.NoError(t, Add(ctx, r, "a.txt"))

	content, ok, err := r.Store.GetStagedAddition("a.txt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", string(content))
	assert.Equal(t, 1, stagedCount(t, r))
}

func TestAdd_MissingFile(t *testing.T) {
	r := newTestRepo(t)

	err := Add(context.Background(), r, "ghost.txt")
	assert.True(t, models.IsNotFoundKind(err, models.KindFile))
}

func TestAdd_CancelsPendingRemoval(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	commitFiles(t, r, "first", map[string]string{"a.txt": "x"})
	require.NoError(t, Remove(ctx, r, "a.txt"))
	assert.False(t, fileExists(t, r, "a.txt"))

	writeFile(t, r, "a.txt", "x")
	require.NoError(t, Add(ctx, r, "a.txt"))

	removed, err := r.Store.IsStagedForRemoval("a.txt")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, stagedCount(t, r))
}

func TestAdd_ChangedContentAfterRemoval(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	commitFiles(t, r, "first", map[string]string{"a.txt": "x"})
	require.NoError(t, Remove(ctx, r, "a.txt"))

	writeFile(t, r, "a.txt", "y")
	require.NoError(t, Add(ctx, r, "a.txt"))

	removed, err := r.Store.IsStagedForRemoval("a.txt")
	require.NoError(t, err)
	assert.False(t, removed)
	content, ok, err := r.Store.GetStagedAddition("a.txt")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", string(content))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	commitFiles(t, r, "first", map[string]string{"tracked.txt": "t"})

	t.Run("unstages addition", func(t *testing.T) {
		writeFile(t, r, "new.txt", "n")
		require.NoError(t, Add(ctx, r, "new.txt"))
		require.NoError(t, Remove(ctx, r, "new.txt"))

		_, ok, err := r.Store.GetStagedAddition("new.txt")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, fileExists(t, r, "new.txt"), "unstaging keeps the working file")
	})

	t.Run("stages removal of tracked file", func(t *testing.T) {
		require.NoError(t, Remove(ctx, r, "tracked.txt"))

		removed, err := r.Store.IsStagedForRemoval("tracked.txt")
		require.NoError(t, err)
		assert.True(t, removed)
		assert.False(t, fileExists(t, r, "tracked.txt"))
	})

	t.Run("nothing to remove", func(t *testing.T) {
		err := Remove(ctx, r, "new.txt")
		assert.ErrorIs(t, err, models.ErrNothingToRemove)
	})
}

func TestGlobalLogAndFind(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	c1 := commitFiles(t, r, "same message", map[string]string{"a.txt": "1"})
	_, err := CreateBranch(ctx, r, "side")
	require.NoError(t, err)
	c2 := commitFiles(t, r, "same message", map[string]string{"a.txt": "2"})
	checkout(t, r, "side")
	c3 := commitFiles(t, r, "other", map[string]string{"b.txt": "b"})

	all, err := GlobalLog(ctx, r)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	ids, err := Find(ctx, r, "same message")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{c1.ID, c2.ID}, ids)

	ids, err = Find(ctx, r, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{c3.ID}, ids)

	_, err = Find(ctx, r, "missing")
	assert.True(t, models.IsNotFoundKind(err, models.KindMessage))
}
