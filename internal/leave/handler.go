package leave

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/civicgrid/hr-management/internal/auth"
	leaveDatamodel "github.com/civicgrid/hr-management/internal/core/datamodel/leave"
	"github.com/civicgrid/hr-management/internal/transport"
	"github.com/civicgrid/hr-management/pkg/logger"
)

type ServiceAPI interface {
	SubmitLeave(ctx context.Context, user *auth.SessionUser, dto SubmitLeaveDTO) (*leaveDatamodel.LeaveRequest, error)
	DecideLeave(ctx context.Context, actor *auth.SessionUser, requestID string, dto DecideLeaveDTO) (*leaveDatamodel.LeaveRequest, error)
	ListLeave(ctx context.Context, actor *auth.SessionUser) ([]RequestWithName, error)
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

func (h *Handler) SubmitLeave(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	var dto SubmitLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.SubmitLeave(r.Context(), user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, request)
}

func (h *Handler) DecideLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	var dto DecideLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := h.Service.DecideLeave(r.Context(), actor, chi.URLParam(r, "id"), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, request)
}

func (h *Handler) ListLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "no active session")
		return
	}

	requests, err := h.Service.ListLeave(r.Context(), actor)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
	})
}
