package service

import (
	"context"
	"testing"

	"github.com/quillhq/writeflow/db/inmemory"
	"github.com/quillhq/writeflow/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	ctx context.Context

	store       *inmemory.Store
	flows       *FlowService
	engagement  *EngagementService
	followGraph *FollowGraphService
	feed        *FeedService
	dashboard   *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := inmemory.New()
	logger := zap.NewNop()
	return &testEnv{
		ctx:         context.Background(),
		store:       store,
		flows:       NewFlowService(store, logger),
		engagement:  NewEngagementService(store, logger),
		followGraph: NewFollowGraphService(store, logger),
		feed:        NewFeedService(store, logger),
		dashboard:   NewDashboardService(store, logger),
	}
}

func (e *testEnv) addUser(t *testing.T, userId string) {
	t.Helper()
	err := e.store.User().Save(e.ctx, &models.UserModel{
		UserId:   userId,
		Username: userId,
		Email:    userId + "@example.com",
		Name:     userId,
	})
	require.NoError(t, err)
}

func (e *testEnv) getUser(t *testing.T, userId string) *models.UserModel {
	t.Helper()
	user, err := e.store.User().FindOneById(e.ctx, userId)
	require.NoError(t, err)
	return user
}

func (e *testEnv) getFlow(t *testing.T, flowId string) *models.FlowModel {
	t.Helper()
	flow, err := e.store.Flow().FindOneById(e.ctx, flowId)
	require.NoError(t, err)
	return flow
}

func (e *testEnv) publishedFlow(t *testing.T, authorId, title string, tags ...string) *models.FlowModel {
	t.Helper()
	draft, err := e.flows.CreateDraft(e.ctx, authorId, title, "", "body of "+title)
	require.NoError(t, err)
	flow, err := e.flows.Publish(e.ctx, authorId, draft.FlowId, tags)
	require.NoError(t, err)
	return flow
}
