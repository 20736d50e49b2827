package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedShowsPublishedOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "Live")
	_, err := env.flows.CreateDraft(env.ctx, "alice", "Hidden draft", "", "")
	require.NoError(t, err)

	feed := env.feed.GetFeed(env.ctx, "", FeedFilter{}, 0, 0)
	require.Len(t, feed, 1)
	assert.Equal(t, "Live", feed[0].Title)
}

func TestFeedOrdersNewestPublishFirst(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "First")
	env.publishedFlow(t, "alice", "Second")

	feed := env.feed.GetFeed(env.ctx, "", FeedFilter{}, 0, 0)
	require.Len(t, feed, 2)
	assert.Equal(t, "Second", feed[0].Title)
	assert.Equal(t, "First", feed[1].Title)
}

func TestFeedExcludesReportedFlows(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	reported := env.publishedFlow(t, "alice", "Spam")
	env.publishedFlow(t, "alice", "Fine")
	_, err := env.feed.ReportFlow(env.ctx, "bob", reported.FlowId, "spam", "link farm")
	require.NoError(t, err)

	feed := env.feed.GetFeed(env.ctx, "bob", FeedFilter{}, 0, 0)
	require.Len(t, feed, 1)
	assert.Equal(t, "Fine", feed[0].Title)

	// other viewers still see it
	feed = env.feed.GetFeed(env.ctx, "alice", FeedFilter{}, 0, 0)
	assert.Len(t, feed, 2)
}

func TestFeedAttachesViewerFlagsAndComments(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	liked := env.publishedFlow(t, "alice", "Liked one")
	env.publishedFlow(t, "alice", "Plain one")

	_, err := env.engagement.ToggleLike(env.ctx, "bob", liked.FlowId)
	require.NoError(t, err)
	_, err = env.engagement.ToggleBookmark(env.ctx, "bob", liked.FlowId)
	require.NoError(t, err)
	root, err := env.engagement.AddComment(env.ctx, "bob", liked.FlowId, "root")
	require.NoError(t, err)
	_, err = env.engagement.ReplyComment(env.ctx, "alice", root.CommentId, "reply")
	require.NoError(t, err)

	feed := env.feed.GetFeed(env.ctx, "bob", FeedFilter{}, 0, 0)
	require.Len(t, feed, 2)
	byTitle := map[string]*FlowView{}
	for _, view := range feed {
		byTitle[view.Title] = view
	}

	enriched := byTitle["Liked one"]
	assert.True(t, enriched.IsLiked)
	assert.True(t, enriched.IsBookmarked)
	assert.Equal(t, "alice", enriched.User.UserId)
	require.Len(t, enriched.Comments, 1)
	assert.Equal(t, "bob", enriched.Comments[0].User.UserId)
	require.Len(t, enriched.Comments[0].Children, 1)
	assert.Equal(t, "reply", enriched.Comments[0].Children[0].Content)

	assert.False(t, byTitle["Plain one"].IsLiked)
	assert.False(t, byTitle["Plain one"].IsBookmarked)
	assert.Empty(t, byTitle["Plain one"].Comments)
}

func TestAnonymousFeedHasAllFlagsFalse(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	flow := env.publishedFlow(t, "alice", "Public")
	_, err := env.engagement.ToggleLike(env.ctx, "bob", flow.FlowId)
	require.NoError(t, err)

	feed := env.feed.GetFeed(env.ctx, "", FeedFilter{}, 0, 0)
	require.Len(t, feed, 1)
	assert.False(t, feed[0].IsLiked)
	assert.False(t, feed[0].IsBookmarked)
	assert.Equal(t, int64(1), feed[0].LikeCount)
}

func TestGetFlowHidesOthersDrafts(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	draft, err := env.flows.CreateDraft(env.ctx, "alice", "WIP", "", "")
	require.NoError(t, err)

	view, err := env.feed.GetFlow(env.ctx, "alice", draft.FlowId)
	require.NoError(t, err)
	assert.Equal(t, "WIP", view.Title)

	_, err = env.feed.GetFlow(env.ctx, "bob", draft.FlowId)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	_, err = env.feed.GetFlow(env.ctx, "", draft.FlowId)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}

func TestUserFeedIncludesDraftsNewestCreatedFirst(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "Older published")
	_, err := env.flows.CreateDraft(env.ctx, "alice", "Newer draft", "", "")
	require.NoError(t, err)

	feed := env.feed.GetUserFeed(env.ctx, "alice")
	require.Len(t, feed, 2)
	assert.Equal(t, "Newer draft", feed[0].Title)
	assert.Equal(t, "Older published", feed[1].Title)
}

func TestHistoryBookmarkedAndLikedListings(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	viewed := env.publishedFlow(t, "alice", "Viewed")
	saved := env.publishedFlow(t, "alice", "Saved")
	loved := env.publishedFlow(t, "alice", "Loved")

	require.NoError(t, env.engagement.RecordView(env.ctx, "bob", viewed.FlowId))
	_, err := env.engagement.ToggleBookmark(env.ctx, "bob", saved.FlowId)
	require.NoError(t, err)
	_, err = env.engagement.ToggleLike(env.ctx, "bob", loved.FlowId)
	require.NoError(t, err)

	history := env.feed.History(env.ctx, "bob")
	require.Len(t, history, 1)
	assert.Equal(t, "Viewed", history[0].Title)

	bookmarked := env.feed.Bookmarked(env.ctx, "bob")
	require.Len(t, bookmarked, 1)
	assert.Equal(t, "Saved", bookmarked[0].Title)
	assert.True(t, bookmarked[0].IsBookmarked)

	liked := env.feed.Liked(env.ctx, "bob")
	require.Len(t, liked, 1)
	assert.Equal(t, "Loved", liked[0].Title)
	assert.True(t, liked[0].IsLiked)
}

func TestReportUnknownFlow(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "bob")

	_, err := env.feed.ReportFlow(env.ctx, "bob", "missing", "spam", "")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}
