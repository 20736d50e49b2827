package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewsReceivedCountsAllOwnFlows(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")

	first := env.publishedFlow(t, "alice", "First")
	second := env.publishedFlow(t, "alice", "Second")

	require.NoError(t, env.engagement.RecordView(env.ctx, "bob", first.FlowId))
	require.NoError(t, env.engagement.RecordView(env.ctx, "carol", first.FlowId))
	require.NoError(t, env.engagement.RecordView(env.ctx, "bob", second.FlowId))

	assert.Equal(t, int64(3), env.dashboard.ViewsReceived(env.ctx, "alice", 7))
	assert.Equal(t, int64(0), env.dashboard.ViewsReceived(env.ctx, "bob", 7))
}

func TestViewsPerDayBucketsTodaysViews(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	flow := env.publishedFlow(t, "alice", "Charted")
	require.NoError(t, env.engagement.RecordView(env.ctx, "bob", flow.FlowId))

	days := env.dashboard.ViewsPerDay(env.ctx, "alice", 7)
	require.Len(t, days, 7)
	var total int64
	for _, day := range days {
		total += day.Count
	}
	assert.Equal(t, int64(1), total)
	assert.Equal(t, int64(1), days[len(days)-1].Count)
}

func TestFollowerGrowth(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")

	_, err := env.followGraph.Follow(env.ctx, "bob", "alice")
	require.NoError(t, err)
	_, err = env.followGraph.Follow(env.ctx, "carol", "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(2), env.dashboard.FollowerGrowth(env.ctx, "alice", 7))
}

func TestRecentFlowsLimited(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "One")
	env.publishedFlow(t, "alice", "Two")
	env.publishedFlow(t, "alice", "Three")

	recent := env.dashboard.RecentFlows(env.ctx, "alice", 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "Three", recent[0].Title)
	assert.Equal(t, "Two", recent[1].Title)
}
