package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	status, err := env.followGraph.Follow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, status.IsFollowing)

	// repeat follow settles without moving counters
	status, err = env.followGraph.Follow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, status.IsFollowing)

	assert.Equal(t, int64(1), env.getUser(t, "bob").FollowerCount)
	assert.Equal(t, int64(1), env.getUser(t, "alice").FollowingCount)
}

func TestSelfFollowRejected(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	_, err := env.followGraph.Follow(env.ctx, "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)

	_, err = env.followGraph.ToggleFollow(env.ctx, "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestUnfollowMissingEdgeIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	status, err := env.followGraph.Unfollow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, status.IsFollowing)
	assert.Equal(t, int64(0), env.getUser(t, "bob").FollowerCount)
	assert.Equal(t, int64(0), env.getUser(t, "alice").FollowingCount)
}

func TestToggleFollowRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	status, err := env.followGraph.ToggleFollow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, status.IsFollowing)
	assert.True(t, env.followGraph.IsFollowing(env.ctx, "alice", "bob"))

	status, err = env.followGraph.ToggleFollow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, status.IsFollowing)
	assert.False(t, env.followGraph.IsFollowing(env.ctx, "alice", "bob"))

	assert.Equal(t, int64(0), env.getUser(t, "bob").FollowerCount)
	assert.Equal(t, int64(0), env.getUser(t, "alice").FollowingCount)
}

func TestFollowerListsArePaged(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "celebrity")
	for _, fan := range []string{"fan1", "fan2", "fan3"} {
		env.addUser(t, fan)
		_, err := env.followGraph.Follow(env.ctx, fan, "celebrity")
		require.NoError(t, err)
	}

	page := env.followGraph.GetFollowers(env.ctx, "celebrity", 0, 2)
	assert.Len(t, page, 2)
	page = env.followGraph.GetFollowers(env.ctx, "celebrity", 1, 2)
	assert.Len(t, page, 1)

	following := env.followGraph.GetFollowing(env.ctx, "fan1", 0, 0)
	require.Len(t, following, 1)
	assert.Equal(t, "celebrity", following[0].UserId)
}

func TestSuggestionsKeepFollowersForFollowBack(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")
	env.addUser(t, "dave")

	// alice follows bob; carol follows alice
	_, err := env.followGraph.Follow(env.ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = env.followGraph.Follow(env.ctx, "carol", "alice")
	require.NoError(t, err)

	suggestions := env.followGraph.Suggestions(env.ctx, "alice", 0)
	ids := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		ids = append(ids, s.UserId)
	}
	assert.NotContains(t, ids, "alice")
	assert.NotContains(t, ids, "bob")
	assert.Contains(t, ids, "carol")
	assert.Contains(t, ids, "dave")
}

func TestRemoveFollower(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	_, err := env.followGraph.Follow(env.ctx, "bob", "alice")
	require.NoError(t, err)

	require.NoError(t, env.followGraph.RemoveFollower(env.ctx, "alice", "bob"))
	assert.False(t, env.followGraph.IsFollowing(env.ctx, "bob", "alice"))
	assert.Equal(t, int64(0), env.getUser(t, "alice").FollowerCount)
	assert.Equal(t, int64(0), env.getUser(t, "bob").FollowingCount)

	// removing again is a no-op
	require.NoError(t, env.followGraph.RemoveFollower(env.ctx, "alice", "bob"))
	assert.Equal(t, int64(0), env.getUser(t, "alice").FollowerCount)
}
