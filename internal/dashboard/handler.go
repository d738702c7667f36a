package dashboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/civicgrid/hr-management/internal/transport"
	"github.com/civicgrid/hr-management/pkg/logger"
)

type ServiceAPI interface {
	Stats(ctx context.Context) (Stats, error)
	DepartmentOverview(ctx context.Context) ([]DepartmentCount, error)
	RecentActivity(ctx context.Context, limit int) []Activity
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     svc,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetDepartmentOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Service.DepartmentOverview(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"departments": overview,
	})
}

func (h *Handler) GetRecentActivity(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	activities := h.Service.RecentActivity(r.Context(), limit)

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"activities": activities,
	})
}
