package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/quillhq/writeflow/service"
	"go.uber.org/zap"
)

// FlowHandler serves the flow lifecycle and feed endpoints.
type FlowHandler struct {
	flows    *service.FlowService
	feed     *service.FeedService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewFlowHandler(flows *service.FlowService, feed *service.FeedService, logger *zap.Logger) *FlowHandler {
	return &FlowHandler{
		flows:    flows,
		feed:     feed,
		validate: validator.New(),
		logger:   logger,
	}
}

type createFlowRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (h *FlowHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	req := createFlowRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "Title is required", Field: "title"})
		return
	}

	flow, err := h.flows.CreateDraft(r.Context(), ViewerId(r), req.Title, req.Description, req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, flow)
}

type updateFieldRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

func (h *FlowHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	req := updateFieldRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	flow, err := h.flows.UpdateTitle(r.Context(), ViewerId(r), chi.URLParam(r, "postId"), req.Title)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, flow)
}

func (h *FlowHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	req := updateFieldRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	flow, err := h.flows.UpdateDescription(r.Context(), ViewerId(r), chi.URLParam(r, "postId"), req.Description)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, flow)
}

func (h *FlowHandler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	req := updateFieldRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	flow, err := h.flows.UpdateContent(r.Context(), ViewerId(r), chi.URLParam(r, "postId"), req.Content)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, flow)
}

type publishRequest struct {
	Tags []string `json:"tags"`
}

func (h *FlowHandler) Publish(w http.ResponseWriter, r *http.Request) {
	req := publishRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	flow, err := h.flows.Publish(r.Context(), ViewerId(r), chi.URLParam(r, "postId"), req.Tags)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, flow)
}

func (h *FlowHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.flows.Delete(r.Context(), ViewerId(r), chi.URLParam(r, "postId")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeSuccess(w, nil)
}

// GetFeed is the public feed; anonymous viewers get all flags false.
func (h *FlowHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	filter := service.FeedFilter{
		SearchText: r.URL.Query().Get("search"),
		Tag:        r.URL.Query().Get("tag"),
		AuthorId:   r.URL.Query().Get("author"),
	}
	flows := h.feed.GetFeed(r.Context(), ViewerId(r), filter, queryInt(r, "page"), queryInt(r, "size"))
	writeData(w, http.StatusOK, flows)
}

func (h *FlowHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	flow, err := h.feed.GetFlow(r.Context(), ViewerId(r), chi.URLParam(r, "postId"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, flow)
}

func (h *FlowHandler) GetOwnFlows(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.feed.GetUserFeed(r.Context(), ViewerId(r)))
}

func (h *FlowHandler) GetDrafts(w http.ResponseWriter, r *http.Request) {
	viewerId := ViewerId(r)
	drafts, err := h.flows.ListDrafts(r.Context(), viewerId, viewerId)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, drafts)
}

func (h *FlowHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.feed.History(r.Context(), ViewerId(r)))
}

func (h *FlowHandler) GetBookmarked(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.feed.Bookmarked(r.Context(), ViewerId(r)))
}

func (h *FlowHandler) GetLiked(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.feed.Liked(r.Context(), ViewerId(r)))
}

func (h *FlowHandler) GetTags(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.flows.RankedTags(r.Context(), queryInt(r, "limit")))
}

type reportRequest struct {
	FlowId string `json:"flowId" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Issue  string `json:"issue"`
}

func (h *FlowHandler) ReportFlow(w http.ResponseWriter, r *http.Request) {
	req := reportRequest{}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "flowId and title are required"})
		return
	}
	report, err := h.feed.ReportFlow(r.Context(), ViewerId(r), req.FlowId, req.Title, req.Issue)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, report)
}

func queryInt(r *http.Request, key string) int64 {
	value, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return value
}
