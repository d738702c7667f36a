package attendance

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/civicgrid/hr-management/internal/auth"
	attendanceDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/attendance"
	"github.com/civicgrid/hr-management/internal/transport"
	"github.com/civicgrid/hr-management/pkg/logger"
)

type ServiceAPI interface {
	CheckIn(ctx context.Context, user *auth.SessionUser, dto CheckInDTO) (*attendanceDatamodel.AttendanceRecord, error)
	CheckOut(ctx context.Context, user *auth.SessionUser) (*attendanceDatamodel.AttendanceRecord, error)
	History(ctx context.Context, userID string, limit int) ([]*attendanceDatamodel.AttendanceRecord, error)
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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	// The body is optional; an empty body means a check-in without notes.
	var dto CheckInDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && err != io.EOF {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, err := h.Service.CheckIn(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, record)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	record, err := h.Service.CheckOut(r.Context(), user)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, record)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	records, err := h.Service.History(r.Context(), user.ID, limit)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
	})
}
