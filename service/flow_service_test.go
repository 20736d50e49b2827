package service

import (
	"testing"

	"github.com/quillhq/writeflow/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDraftRequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	_, err := env.flows.CreateDraft(env.ctx, "alice", "   ", "", "body")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "title", validationErr.Field)

	flow, err := env.flows.CreateDraft(env.ctx, "alice", "  My   first    flow ", "", "body")
	require.NoError(t, err)
	assert.Equal(t, "My first flow", flow.Title)
	assert.False(t, flow.IsPublished)
	assert.Zero(t, flow.LikeCount)
	assert.Zero(t, flow.CommentCount)
	assert.Zero(t, flow.ViewCount)
}

func TestDraftEditsAreOwnerAndDraftOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "mallory")

	draft, err := env.flows.CreateDraft(env.ctx, "alice", "Draft", "", "v1")
	require.NoError(t, err)

	_, err = env.flows.UpdateContent(env.ctx, "mallory", draft.FlowId, "hijacked")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	assert.Equal(t, "v1", env.getFlow(t, draft.FlowId).Content)

	updated, err := env.flows.UpdateContent(env.ctx, "alice", draft.FlowId, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	_, err = env.flows.Publish(env.ctx, "alice", draft.FlowId, nil)
	require.NoError(t, err)

	// published flows are no longer editable
	_, err = env.flows.UpdateTitle(env.ctx, "alice", draft.FlowId, "New title")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}

func TestPublishIsOneWayAndAttachesTags(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	draft, err := env.flows.CreateDraft(env.ctx, "alice", "Tagged", "", "body")
	require.NoError(t, err)

	flow, err := env.flows.Publish(env.ctx, "alice", draft.FlowId, []string{" go ", "go", "", "mongo"})
	require.NoError(t, err)
	assert.True(t, flow.IsPublished)
	assert.NotZero(t, flow.PublishedAt)
	assert.Equal(t, []string{"go", "mongo"}, flow.Tags)

	tag, err := env.store.Tag().FindOneById(env.ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tag.PostsCount)

	// publishing again fails, re-attaching the same tag must not double count
	_, err = env.flows.Publish(env.ctx, "alice", draft.FlowId, []string{"go"})
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	tag, err = env.store.Tag().FindOneById(env.ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tag.PostsCount)
}

func TestPublishedAtIsStrictlyIncreasing(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	first := env.publishedFlow(t, "alice", "First")
	second := env.publishedFlow(t, "alice", "Second")

	// back-to-back publishes in the same millisecond must still order
	assert.Greater(t, second.PublishedAt, first.PublishedAt)
}

func TestDeleteCascadesToEngagement(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	flow := env.publishedFlow(t, "alice", "Doomed")
	_, err := env.engagement.ToggleLike(env.ctx, "bob", flow.FlowId)
	require.NoError(t, err)
	require.NoError(t, env.engagement.RecordView(env.ctx, "bob", flow.FlowId))
	_, err = env.engagement.AddComment(env.ctx, "bob", flow.FlowId, "nice")
	require.NoError(t, err)

	// a non-owner cannot delete and nothing is touched
	err = env.flows.Delete(env.ctx, "bob", flow.FlowId)
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
	assert.Len(t, env.store.Comment().GetByFlow(env.ctx, flow.FlowId), 1)

	require.NoError(t, env.flows.Delete(env.ctx, "alice", flow.FlowId))
	_, err = env.store.Flow().FindOneById(env.ctx, flow.FlowId)
	assert.ErrorIs(t, err, db.ErrNotFound)
	assert.Empty(t, env.store.Comment().GetByFlow(env.ctx, flow.FlowId))
	assert.Empty(t, env.store.FlowLike().GetAllLikedFlowIds(env.ctx, "bob"))
	assert.Empty(t, env.store.View().GetHistoryFlowIds(env.ctx, "bob"))
}

func TestListDraftsIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	_, err := env.flows.CreateDraft(env.ctx, "alice", "Secret draft", "", "")
	require.NoError(t, err)
	env.publishedFlow(t, "alice", "Public flow")

	drafts, err := env.flows.ListDrafts(env.ctx, "alice", "alice")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Secret draft", drafts[0].Title)

	_, err = env.flows.ListDrafts(env.ctx, "mallory", "alice")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}

func TestSearchPublishedIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "Concurrency in Go")
	env.publishedFlow(t, "alice", "Cooking pasta")
	_, err := env.flows.CreateDraft(env.ctx, "alice", "go draft", "", "")
	require.NoError(t, err)

	results := env.flows.SearchPublished(env.ctx, "GO", 0, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "Concurrency in Go", results[0].Title)
}

func TestRankedTagsOrderByUsage(t *testing.T) {
	env := newTestEnv(t)
	env.addUser(t, "alice")

	env.publishedFlow(t, "alice", "One", "go", "mongo")
	env.publishedFlow(t, "alice", "Two", "go")

	tags := env.flows.RankedTags(env.ctx, 0)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Tag)
	assert.Equal(t, int64(2), tags[0].PostsCount)
	assert.Equal(t, "mongo", tags[1].Tag)
}
