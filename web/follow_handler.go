package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quillhq/writeflow/service"
	"go.uber.org/zap"
)

// FollowHandler serves the follow graph endpoints.
type FollowHandler struct {
	followGraph *service.FollowGraphService
	logger      *zap.Logger
}

func NewFollowHandler(followGraph *service.FollowGraphService, logger *zap.Logger) *FollowHandler {
	return &FollowHandler{
		followGraph: followGraph,
		logger:      logger,
	}
}

// ToggleFollow replies with the flat {message, isFollowing} shape.
func (h *FollowHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	status, err := h.followGraph.ToggleFollow(r.Context(), ViewerId(r), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *FollowHandler) GetFollowers(w http.ResponseWriter, r *http.Request) {
	followers := h.followGraph.GetFollowers(r.Context(), chi.URLParam(r, "userId"), queryInt(r, "page"), queryInt(r, "size"))
	writeData(w, http.StatusOK, followers)
}

func (h *FollowHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	following := h.followGraph.GetFollowing(r.Context(), chi.URLParam(r, "userId"), queryInt(r, "page"), queryInt(r, "size"))
	writeData(w, http.StatusOK, following)
}

func (h *FollowHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.followGraph.Suggestions(r.Context(), ViewerId(r), queryInt(r, "limit")))
}

func (h *FollowHandler) RemoveFollower(w http.ResponseWriter, r *http.Request) {
	if err := h.followGraph.RemoveFollower(r.Context(), ViewerId(r), chi.URLParam(r, "followerId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil)
}
