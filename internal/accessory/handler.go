package accessory

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-management/internal"
	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	CreateAccessory(ctx context.Context, dto CreateAccessoryDTO) (*Accessory, error)
	GetAccessory(ctx context.Context, id int64) (*Detail, error)
	ListAccessories(ctx context.Context, filter ListFilter) ([]*Accessory, error)
	UpdateAccessory(ctx context.Context, id int64, dto UpdateAccessoryDTO) (*Accessory, error)
	DeleteAccessory(ctx context.Context, id int64) error
	Install(ctx context.Context, accessoryID int64, dto ChangeDTO) (*ChangeResult, error)
	Remove(ctx context.Context, accessoryID int64, dto ChangeDTO) (*ChangeResult, error)
	AssetConfiguration(ctx context.Context, assetID int64) (*Configuration, error)
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

func (h *Handler) ListAccessories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ListFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
	}
	if raw := q.Get("asset_id"); raw != "" {
		assetID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || assetID <= 0 {
			h.HandleServiceError(w, internal.NewValidationFieldError("asset_id", "asset_id must be a positive integer", internal.ErrCodeValidationFailed))
			return
		}
		filter.AssetID = &assetID
	}

	items, err := h.Service.ListAccessories(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AccessoriesResponse{Accessories: items})
}

func (h *Handler) CreateAccessory(w http.ResponseWriter, r *http.Request) {
	var dto CreateAccessoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateAccessory: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	item, err := h.Service.CreateAccessory(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) GetAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	detail, err := h.Service.GetAccessory(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto UpdateAccessoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("UpdateAccessory: invalid request body", "error", err, "accessory_id", id)
		h.HandleServiceError(w, err)
		return
	}

	item, err := h.Service.UpdateAccessory(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteAccessory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteAccessory(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) InstallAccessory(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.Service.Install)
}

func (h *Handler) RemoveAccessory(w http.ResponseWriter, r *http.Request) {
	h.change(w, r, h.Service.Remove)
}

func (h *Handler) change(w http.ResponseWriter, r *http.Request, op func(context.Context, int64, ChangeDTO) (*ChangeResult, error)) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto ChangeDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("accessory change: invalid request body", "error", err, "accessory_id", id)
		h.HandleServiceError(w, err)
		return
	}

	result, err := op(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAssetConfiguration(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	cfg, err := h.Service.AssetConfiguration(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cfg)
}
