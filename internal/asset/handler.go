package asset

import (
	"context"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	CreateAsset(ctx context.Context, dto CreateAssetDTO) (*Asset, error)
	GetAsset(ctx context.Context, id int64) (*Asset, error)
	ListAssets(ctx context.Context, filter ListFilter) ([]*Asset, error)
	UpdateAsset(ctx context.Context, id int64, dto UpdateAssetDTO) (*Asset, error)
	DeleteAsset(ctx context.Context, id int64) error
	AssetHistory(ctx context.Context, id int64) (*History, error)
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

func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	}

	assets, err := h.Service.ListAssets(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AssetsResponse{Assets: assets})
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var dto CreateAssetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateAsset: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.CreateAsset(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.GetAsset(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateAssetDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("UpdateAsset: invalid request body", "error", err, "asset_id", id)
		h.HandleServiceError(w, err)
		return
	}

	a, err := h.Service.UpdateAsset(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteAsset(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAssetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	history, err := h.Service.AssetHistory(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, history)
}
