package remote

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kilupskalvis/gitlet/internal/config"
	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/kilupskalvis/gitlet/internal/objectstore"
	"github.com/kilupskalvis/gitlet/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	berrors "go.etcd.io/bbolt/errors"
)

// newRemoteRepo lays out a repository with a root commit on master and returns its
// working directory and root commit id.
func newRemoteRepo(t *testing.T) (string, string) {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	cfg, err := config.Initialize(dir)
	require.NoError(t, err)

	objects, err := objectstore.NewFSStore(cfg.ObjectsPath())
	require.NoError(t, err)
	root := models.NewCommit("initial commit", time.Unix(0, 0), nil, nil, nil)
	_, err = objects.PutCommit(ctx, root)
	require.NoError(t, err)

	st, err := store.New(cfg.StatePath())
	require.NoError(t, err)
	require.NoError(t, st.Initialize())
	require.NoError(t, st.CreateBranch("master", root.ID))
	require.NoError(t, st.SetHead(&models.HeadState{BranchName: "master", InitialCommitID: root.ID}))
	require.NoError(t, st.Close())

	return dir, root.ID
}

func openTestClient(t *testing.T, path string) *LocalClient {
	t.Helper()
	client, err := OpenLocal(path)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestOpenLocal_AcceptsWorkTreeOrGitletDir(t *testing.T) {
	dir, rootID := newRemoteRepo(t)

	for _, path := range []string{dir, filepath.Join(dir, config.GitletDir)} {
		client, err := OpenLocal(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, config.GitletDir), client.Path())

		b, err := client.GetBranch(context.Background(), "master")
		require.NoError(t, err)
		require.NotNil(t, b)
		assert.Equal(t, rootID, b.CommitID)
		require.NoError(t, client.Close())
	}
}

func TestOpenLocal_MissingRepository(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nowhere")

	_, err := OpenLocal(missing)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.True(t, models.IsNotFoundKind(err, models.KindRemoteDir))
	assert.Contains(t, err.Error(), "remote directory")
}

func TestOpenLocal_LockedRepository(t *testing.T) {
	dir, _ := newRemoteRepo(t)
	openTestClient(t, dir)

	_, err := OpenLocal(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, berrors.ErrTimeout)
	assert.True(t, isTransient(err))
}

func TestOpen_WaitsForLock(t *testing.T) {
	dir, _ := newRemoteRepo(t)
	holder, err := OpenLocal(dir)
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		holder.Close()
	}()

	client, err := Open(context.Background(), dir, fastRetry(3))
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestOpen_MissingRepositoryNotRetried(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nowhere"), fastRetry(3))
	assert.True(t, models.IsNotFoundKind(err, models.KindRemoteDir))
}

func TestLocalClient_UpdateBranchCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	dir, rootID := newRemoteRepo(t)
	client := openTestClient(t, dir)

	// Create requires an empty expected tip
	err := client.UpdateBranch(ctx, "master", "c2", "")
	assert.ErrorIs(t, err, ErrBranchMoved)

	require.NoError(t, client.UpdateBranch(ctx, "master", "c2", rootID))
	b, err := client.GetBranch(ctx, "master")
	require.NoError(t, err)
	assert.Equal(t, "c2", b.CommitID)

	// Stale expectation is rejected and leaves the branch alone
	err = client.UpdateBranch(ctx, "master", "c3", rootID)
	assert.ErrorIs(t, err, ErrBranchMoved)
	b, err = client.GetBranch(ctx, "master")
	require.NoError(t, err)
	assert.Equal(t, "c2", b.CommitID)

	// New branch
	require.NoError(t, client.UpdateBranch(ctx, "feature", "c9", ""))
	b, err = client.GetBranch(ctx, "feature")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "c9", b.CommitID)

	missing, err := client.GetBranch(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLocalClient_SetHeadBranchPersists(t *testing.T) {
	ctx := context.Background()
	dir, rootID := newRemoteRepo(t)

	client, err := OpenLocal(dir)
	require.NoError(t, err)
	require.NoError(t, client.UpdateBranch(ctx, "feature", rootID, ""))
	require.NoError(t, client.SetHeadBranch(ctx, "feature"))
	require.NoError(t, client.Close())

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	st, err := store.New(cfg.StatePath())
	require.NoError(t, err)
	defer st.Close()

	head, err := st.GetHead()
	require.NoError(t, err)
	assert.Equal(t, "feature", head.BranchName)
	assert.Equal(t, rootID, head.InitialCommitID)
}

func TestLocalClient_ObjectsReadable(t *testing.T) {
	ctx := context.Background()
	dir, rootID := newRemoteRepo(t)
	client := openTestClient(t, dir)

	has, err := client.HasCommit(ctx, rootID)
	require.NoError(t, err)
	assert.True(t, has)

	blob := models.NewBlob("a.txt", []byte("hello"))
	_, err = client.PutBlob(ctx, blob)
	require.NoError(t, err)
	got, err := client.GetBlob(ctx, blob.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got.Content)
}
