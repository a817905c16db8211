package location

import (
	"context"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	ListPremises(ctx context.Context) ([]*Lookup, error)
	CreatePremise(ctx context.Context, dto LookupDTO) (*Lookup, error)
	DeletePremise(ctx context.Context, id int64) error
	ListFloors(ctx context.Context) ([]*Lookup, error)
	CreateFloor(ctx context.Context, dto LookupDTO) (*Lookup, error)
	DeleteFloor(ctx context.Context, id int64) error
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

func (h *Handler) ListPremises(w http.ResponseWriter, r *http.Request) {
	premises, err := h.Service.ListPremises(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, PremisesResponse{Premises: premises})
}

func (h *Handler) CreatePremise(w http.ResponseWriter, r *http.Request) {
	var dto LookupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreatePremise: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	premise, err := h.Service.CreatePremise(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, premise)
}

func (h *Handler) DeletePremise(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeletePremise(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListFloors(w http.ResponseWriter, r *http.Request) {
	floors, err := h.Service.ListFloors(r.Context())
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, FloorsResponse{Floors: floors})
}

func (h *Handler) CreateFloor(w http.ResponseWriter, r *http.Request) {
	var dto LookupDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateFloor: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	floor, err := h.Service.CreateFloor(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, floor)
}

func (h *Handler) DeleteFloor(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteFloor(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
