package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quillhq/writeflow/service"
	"go.uber.org/zap"
)

// EngagementHandler serves likes, views, bookmarks and comments.
type EngagementHandler struct {
	engagement *service.EngagementService
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewEngagementHandler(engagement *service.EngagementService, logger *zap.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagement: engagement,
		validate:   validator.New(),
		logger:     logger,
	}
}

func (h *EngagementHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	result, err := h.engagement.ToggleLike(r.Context(), ViewerId(r), chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result)
}

// RecordView replies {"success": true} for first and repeat views
// alike.
func (h *EngagementHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if err := h.engagement.RecordView(r.Context(), ViewerId(r), chi.URLParam(r, "postId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil)
}

func (h *EngagementHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	result, err := h.engagement.ToggleBookmark(r.Context(), ViewerId(r), chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result)
}

type commentRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentId string `json:"parentId"`
}

// AddComment creates a root comment, or a reply when parentId is set.
func (h *EngagementHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	req := commentRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Content is required", Field: "content"})
		return
	}

	if len(req.ParentId) > 0 {
		comment, err := h.engagement.ReplyComment(r.Context(), ViewerId(r), req.ParentId, req.Content)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeData(w, http.StatusCreated, comment)
		return
	}

	comment, err := h.engagement.AddComment(r.Context(), ViewerId(r), chi.URLParam(r, "postId"), req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, comment)
}

func (h *EngagementHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.engagement.GetCommentTree(r.Context(), chi.URLParam(r, "postId")))
}

func (h *EngagementHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	if err := h.engagement.DeleteComment(r.Context(), ViewerId(r), chi.URLParam(r, "commentId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil)
}

func (h *EngagementHandler) ToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	result, err := h.engagement.ToggleCommentLike(r.Context(), ViewerId(r), chi.URLParam(r, "commentId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, result)
}
