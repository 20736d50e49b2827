package web

import (
	"net/http"

	"github.com/quillhq/writeflow/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the author stats endpoints. All routes
// require auth and operate on the viewer's own data.
type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger,
	}
}

func (h *DashboardHandler) ViewsReceived(w http.ResponseWriter, r *http.Request) {
	count := h.dashboard.ViewsReceived(r.Context(), ViewerId(r), windowDays(r))
	writeData(w, http.StatusOK, map[string]int64{"views": count})
}

func (h *DashboardHandler) ViewsPerDay(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.dashboard.ViewsPerDay(r.Context(), ViewerId(r), windowDays(r)))
}

func (h *DashboardHandler) FollowerGrowth(w http.ResponseWriter, r *http.Request) {
	count := h.dashboard.FollowerGrowth(r.Context(), ViewerId(r), windowDays(r))
	writeData(w, http.StatusOK, map[string]int64{"followers": count})
}

func (h *DashboardHandler) RecentFlows(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.dashboard.RecentFlows(r.Context(), ViewerId(r), queryInt(r, "limit")))
}

func windowDays(r *http.Request) int64 {
	days := queryInt(r, "days")
	if days <= 0 {
		days = 7
	}
	return days
}
