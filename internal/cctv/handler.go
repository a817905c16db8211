package cctv

import (
	"context"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	CreateCamera(ctx context.Context, dto CameraDTO) (*Camera, error)
	AddStockCamera(ctx context.Context, dto StockCameraDTO) (*Camera, error)
	GetCamera(ctx context.Context, id int64) (*Camera, error)
	ListCameras(ctx context.Context, filter ListFilter) ([]*Camera, error)
	UpdateCamera(ctx context.Context, id int64, dto CameraDTO) (*Camera, error)
	SetStatus(ctx context.Context, id int64, dto StatusDTO) (*Camera, error)
	DeleteCamera(ctx context.Context, id int64) error
	LogCameraRepair(ctx context.Context, dto LogRepairDTO) (*Repair, error)
	CameraHistory(ctx context.Context, id int64) (*History, error)
	Replace(ctx context.Context, oldID int64, dto ReplaceDTO) (*ReplaceResult, error)
	Overview(ctx context.Context, query OverviewQuery) (*Overview, error)
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

func (h *Handler) ListCameras(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cameras, err := h.Service.ListCameras(r.Context(), ListFilter{
		Status:  q.Get("status"),
		Premise: q.Get("premise"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, CamerasResponse{Cameras: cameras})
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	overview, err := h.Service.Overview(r.Context(), OverviewQuery{
		Premise: q.Get("premise"),
		Search:  q.Get("search"),
		Sort:    q.Get("sort"),
	})
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overview)
}

func (h *Handler) CreateCamera(w http.ResponseWriter, r *http.Request) {
	var dto CameraDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("CreateCamera: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	camera, err := h.Service.CreateCamera(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, camera)
}

func (h *Handler) AddStockCamera(w http.ResponseWriter, r *http.Request) {
	var dto StockCameraDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("AddStockCamera: invalid request body", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	camera, err := h.Service.AddStockCamera(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, camera)
}

func (h *Handler) GetCamera(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	camera, err := h.Service.GetCamera(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, camera)
}

func (h *Handler) UpdateCamera(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto CameraDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("UpdateCamera: invalid request body", "error", err, "cctv_id", id)
		h.HandleServiceError(w, err)
		return
	}

	camera, err := h.Service.UpdateCamera(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, camera)
}

func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto StatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("SetStatus: invalid request body", "error", err, "cctv_id", id)
		h.HandleServiceError(w, err)
		return
	}

	camera, err := h.Service.SetStatus(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, camera)
}

func (h *Handler) DeleteCamera(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	if err := h.Service.DeleteCamera(r.Context(), id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LogCameraRepair(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto LogRepairDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("LogCameraRepair: invalid request body", "error", err, "cctv_id", id)
		h.HandleServiceError(w, err)
		return
	}
	dto.CCTVID = id

	repair, err := h.Service.LogCameraRepair(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, repair)
}

func (h *Handler) GetCameraHistory(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	history, err := h.Service.CameraHistory(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) ReplaceCamera(w http.ResponseWriter, r *http.Request) {
	id, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto ReplaceDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Warn("ReplaceCamera: invalid request body", "error", err, "cctv_id", id)
		h.HandleServiceError(w, err)
		return
	}

	result, err := h.Service.Replace(r.Context(), id, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}
