package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quillhq/writeflow/db/inmemory"
	"github.com/quillhq/writeflow/models"
	"github.com/quillhq/writeflow/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (http.Handler, *inmemory.Store) {
	t.Helper()
	store := inmemory.New()
	logger := zap.NewNop()

	router := NewRouter(
		NewAuthMiddleware(testSecret, logger),
		NewFlowHandler(service.NewFlowService(store, logger), service.NewFeedService(store, logger), logger),
		NewEngagementHandler(service.NewEngagementService(store, logger), logger),
		NewFollowHandler(service.NewFollowGraphService(store, logger), logger),
		NewDashboardHandler(service.NewDashboardService(store, logger), logger),
	)
	return router, store
}

func token(t *testing.T, userId string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userId}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(t *testing.T, handler http.Handler, method, path, userId, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if len(userId) > 0 {
		req.Header.Set("Authorization", "Bearer "+token(t, userId))
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	return recorder
}

func seedUser(t *testing.T, store *inmemory.Store, userId string) {
	t.Helper()
	err := store.User().Save(context.Background(), &models.UserModel{
		UserId:   userId,
		Username: userId,
		Email:    userId + "@example.com",
	})
	require.NoError(t, err)
}

func seedPublishedFlow(t *testing.T, store *inmemory.Store, authorId, title string) *models.FlowModel {
	t.Helper()
	ctx := context.Background()
	flows := service.NewFlowService(store, zap.NewNop())
	draft, err := flows.CreateDraft(ctx, authorId, title, "", "body")
	require.NoError(t, err)
	flow, err := flows.Publish(ctx, authorId, draft.FlowId, nil)
	require.NoError(t, err)
	return flow
}

func TestLikeEndpointEnvelope(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	flow := seedPublishedFlow(t, store, "alice", "Likeable")

	resp := doRequest(t, handler, http.MethodPost, "/posts/"+flow.FlowId+"/like", "bob", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := struct {
		Success bool `json:"success"`
		Data    struct {
			LikeCount int64 `json:"likeCount"`
			IsLiked   bool  `json:"isLiked"`
		} `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.True(t, body.Data.IsLiked)
	assert.Equal(t, int64(1), body.Data.LikeCount)
}

func TestFollowEndpointEnvelope(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")

	resp := doRequest(t, handler, http.MethodPost, "/follow/bob", "alice", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := struct {
		Message     string `json:"message"`
		IsFollowing bool   `json:"isFollowing"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.IsFollowing)
	assert.NotEmpty(t, body.Message)

	resp = doRequest(t, handler, http.MethodPost, "/follow/alice", "alice", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestViewEndpointIsIdempotent(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	flow := seedPublishedFlow(t, store, "alice", "Viewed")

	for i := 0; i < 2; i++ {
		resp := doRequest(t, handler, http.MethodPost, "/posts/"+flow.FlowId+"/view", "bob", "")
		require.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"success": true}`, resp.Body.String())
	}

	stored, err := store.Flow().FindOneById(context.Background(), flow.FlowId)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.ViewCount)
}

func TestFeedEndpointEnvelope(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	seedPublishedFlow(t, store, "alice", "Hello world")

	// anonymous read goes through
	resp := doRequest(t, handler, http.MethodGet, "/posts", "", "")
	require.Equal(t, http.StatusOK, resp.Code)

	body := struct {
		Data []struct {
			Id      string `json:"id"`
			Title   string `json:"title"`
			IsLiked bool   `json:"isLiked"`
			User    struct {
				Id string `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Hello world", body.Data[0].Title)
	assert.Equal(t, "alice", body.Data[0].User.Id)
	assert.NotEmpty(t, body.Data[0].Id)
	assert.False(t, body.Data[0].IsLiked)
}

func TestMutationsRequireAuth(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	flow := seedPublishedFlow(t, store, "alice", "Guarded")

	resp := doRequest(t, handler, http.MethodPost, "/posts/"+flow.FlowId+"/like", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(t, handler, http.MethodPost, "/posts", "", `{"title":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCommentAndReportResponsesUseCamelCase(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")
	seedUser(t, store, "bob")
	flow := seedPublishedFlow(t, store, "alice", "Discussed")

	resp := doRequest(t, handler, http.MethodPost, "/posts/"+flow.FlowId+"/comments", "bob", `{"content":"hi"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	envelope := struct {
		Data map[string]json.RawMessage `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data, "id")
	assert.Contains(t, envelope.Data, "flowId")
	assert.Contains(t, envelope.Data, "userId")
	assert.NotContains(t, envelope.Data, "CommentId")

	resp = doRequest(t, handler, http.MethodPost, "/reports", "bob",
		`{"flowId":"`+flow.FlowId+`","title":"spam","issue":"link farm"}`)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Contains(t, envelope.Data, "id")
	assert.Contains(t, envelope.Data, "reporterId")
	assert.Contains(t, envelope.Data, "status")
	assert.NotContains(t, envelope.Data, "ReporterId")
}

func TestCreateDraftValidation(t *testing.T) {
	handler, store := newTestServer(t)
	seedUser(t, store, "alice")

	resp := doRequest(t, handler, http.MethodPost, "/posts", "alice", `{"description":"no title"}`)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = doRequest(t, handler, http.MethodPost, "/posts", "alice", `{"title":"A title","content":"body"}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	body := struct {
		Data struct {
			Id          string `json:"id"`
			IsPublished bool   `json:"isPublished"`
		} `json:"data"`
	}{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Id)
	assert.False(t, body.Data.IsPublished)
}
