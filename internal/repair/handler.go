package repair

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	LogRepair(ctx context.Context, dto LogRepairDTO) (*Repair, error)
	ListRepairs(ctx context.Context) ([]*Repair, error)
	ListRecentRepairs(ctx context.Context, limit int) ([]*Repair, error)
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

func (h *Handler) LogRepair(w http.ResponseWriter, r *http.Request) {
	var dto LogRepairDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.LogRepair(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ListRepairs returns every repair, or the latest ones when ?limit= is given.
func (h *Handler) ListRepairs(w http.ResponseWriter, r *http.Request) {
	var (
		repairs []*Repair
		err     error
	)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, convErr := strconv.Atoi(limitStr)
		if convErr != nil || limit <= 0 || limit > 100 {
			h.WriteError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		repairs, err = h.Service.ListRecentRepairs(r.Context(), limit)
	} else {
		repairs, err = h.Service.ListRepairs(r.Context())
	}
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, RepairsResponse{Repairs: repairs})
}
