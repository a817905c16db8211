package staff

import (
	"context"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	CreateStaff(ctx context.Context, dto StaffDTO) (*Staff, error)
	GetStaff(ctx context.Context, id int64) (*Staff, error)
	ListStaff(ctx context.Context, search string) ([]*Staff, error)
	UpdateStaff(ctx context.Context, id int64, dto StaffDTO) (*Staff, error)
	DeleteStaff(ctx context.Context, id int64) error
	StaffProfile(ctx context.Context, id int64) (*Profile, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListStaff(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, StaffListResponse{Staff: members})
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var dto StaffDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	member, err := h.Service.CreateStaff(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, member)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	member, err := h.Service.GetStaff(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto StaffDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	member, err := h.Service.UpdateStaff(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteStaff(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetStaffProfile(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	profile, err := h.Service.StaffProfile(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}
