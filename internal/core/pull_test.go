package core

import (
	"context"
	"testing"

	"github.com/kilupskalvis/gitlet/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchMaster(t *testing.T, r *Repo) (*FetchResult, error) {
	t.Helper()
	client := openOrigin(t, r)
	defer client.Close()
	return Fetch(context.Background(), r, client, FetchOptions{RemoteName: "origin", Branch: "master"}, nil)
}

func pullMaster(t *testing.T, r *Repo) (*PullResult, error) {
	t.Helper()
	client := openOrigin(t, r)
	defer client.Close()
	return Pull(context.Background(), r, client, PullOptions{RemoteName: "origin", Branch: "master"}, nil)
}

func TestFetch_UpdatesOnlyTrackingRef(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	remoteDir := newRemoteDir(t)
	require.NoError(t, AddRemote(r, "origin", remoteDir))

	var remoteTip *models.Commit
	withRemoteRepo(t, remoteDir, func(rr *Repo) {
		commitFiles(t, rr, "r1", map[string]string{"r.txt": "1"})
		remoteTip = commitFiles(t, rr, "r2", map[string]string{"r.txt": "2"})
	})

	before, err := r.headCommit(ctx)
	require.NoError(t, err)

	result, err := fetchMaster(t, r)
	require.NoError(t, err)
	assert.Equal(t, "origin/master", result.TrackingBranch)
	assert.Equal(t, remoteTip.ID, result.RemoteTip)
	assert.Equal(t, 2, result.CommitsFetched)
	assert.Equal(t, 2, result.BlobsFetched)
	assert.Empty(t, result.PreviousTip)

	tracking, err := r.Store.GetBranch("origin/master")
	require.NoError(t, err)
	assert.Equal(t, remoteTip.ID, tracking.CommitID)

	after, err := r.headCommit(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.False(t, fileExists(t, r, "r.txt"))

	// Fetched history is usable locally
	require.NoError(t, CheckoutFileAt(ctx, r, remoteTip.ShortID(), "r.txt"))
	assert.Equal(t, "2", readFile(t, r, "r.txt"))

	again, err := fetchMaster(t, r)
	require.NoError(t, err)
	assert.True(t, again.UpToDate)
	assert.Equal(t, remoteTip.ID, again.PreviousTip)
}

func TestFetch_MissingRemoteBranch(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, AddRemote(r, "origin", newRemoteDir(t)))

	client := openOrigin(t, r)
	_, err := Fetch(ctx, r, client, FetchOptions{RemoteName: "origin", Branch: "ghost"}, nil)
	assert.True(t, models.IsNotFoundKind(err, models.KindRemoteBranch))
	assert.Equal(t, "that remote does not have branch 'ghost'", err.Error())

	tracking, err := r.Store.GetBranch("origin/ghost")
	require.NoError(t, err)
	assert.Nil(t, tracking)
}

func TestPull_FastForward(t *testing.T) {
	r := newTestRepo(t)
	remoteDir := newRemoteDir(t)
	require.NoError(t, AddRemote(r, "origin", remoteDir))

	var remoteTip *models.Commit
	withRemoteRepo(t, remoteDir, func(rr *Repo) {
		remoteTip = commitFiles(t, rr, "remote work", map[string]string{"r.txt": "r"})
	})

	result, err := pullMaster(t, r)
	require.NoError(t, err)
	require.NotNil(t, result.Merge)
	assert.True(t, result.Merge.FastForward)
	assert.Equal(t, 1, result.CommitsFetched)

	branch, err := r.Store.GetBranch("master")
	require.NoError(t, err)
	assert.Equal(t, remoteTip.ID, branch.CommitID)
	assert.Equal(t, "r", readFile(t, r, "r.txt"))
}

func TestPull_MergesDivergedHistory(t *testing.T) {
	r := newTestRepo(t)
	remoteDir := newRemoteDir(t)
	require.NoError(t, AddRemote(r, "origin", remoteDir))

	withRemoteRepo(t, remoteDir, func(rr *Repo) {
		commitFiles(t, rr, "remote work", map[string]string{"r.txt": "r"})
	})
	commitFiles(t, r, "local work", map[string]string{"l.txt": "l"})

	result, err := pullMaster(t, r)
	require.NoError(t, err)
	require.NotNil(t, result.Merge)
	require.NotNil(t, result.Merge.MergeCommit)
	assert.False(t, result.Merge.HasConflicts())
	assert.Equal(t, "Merged origin/master into master.", result.Merge.MergeCommit.Message)

	assert.Equal(t, "r", readFile(t, r, "r.txt"))
	assert.Equal(t, "l", readFile(t, r, "l.txt"))
}

func TestPull_UpToDateWhenRemoteBehind(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, AddRemote(r, "origin", newRemoteDir(t)))
	commitFiles(t, r, "local work", map[string]string{"l.txt": "l"})

	result, err := pullMaster(t, r)
	require.NoError(t, err)
	assert.True(t, result.UpToDate)
	assert.Nil(t, result.Merge)
}

func TestPull_RejectsStagedChanges(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	require.NoError(t, AddRemote(r, "origin", newRemoteDir(t)))

	writeFile(t, r, "a.txt", "a")
	require.NoError(t, Add(ctx, r, "a.txt"))

	_, err := pullMaster(t, r)
	assert.ErrorIs(t, err, models.ErrUncommittedChanges)

	tracking, err := r.Store.GetBranch("origin/master")
	require.NoError(t, err)
	assert.Nil(t, tracking)
}

func TestFetch_RefusesToMoveCheckedOutTrackingRef(t *testing.T) {
	r := newTestRepo(t)
	remoteDir := newRemoteDir(t)
	require.NoError(t, AddRemote(r, "origin", remoteDir))
	first, err := fetchMaster(t, r)
	require.NoError(t, err)

	require.NoError(t, r.Store.SetCurrentBranch("origin/master"))
	local := commitFiles(t, r, "local work", map[string]string{"l.txt": "1"})
	withRemoteRepo(t, remoteDir, func(rr *Repo) {
		commitFiles(t, rr, "r1", map[string]string{"r.txt": "1"})
	})

	_, err = fetchMaster(t, r)
	assert.ErrorIs(t, err, models.ErrCurrentBranch)

	tracking, err := r.Store.GetBranch("origin/master")
	require.NoError(t, err)
	assert.Equal(t, local.ID, tracking.CommitID)
	assert.NotEqual(t, first.RemoteTip, tracking.CommitID)
}
