package assignment

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/frahmantamala/asset-management/internal/transport"
)

type ServiceAPI interface {
	Issue(ctx context.Context, assetID int64, dto IssueDTO) (*Assignment, error)
	Return(ctx context.Context, assetID int64, dto ReturnDTO) (*ReturnResult, error)
	CurrentAssignment(ctx context.Context, assetID int64) (*Assignment, error)
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

func (h *Handler) IssueAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto IssueDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	created, err := h.Service.Issue(r.Context(), assetID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// ReturnAsset accepts an empty body, which returns today against the latest open assignment.
func (h *Handler) ReturnAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	var dto ReturnDTO
	if r.ContentLength != 0 {
		if err := h.DecodeJSON(r, &dto); err != nil && !isEmptyBody(err) {
			h.HandleServiceError(w, err)
			return
		}
	}

	result, err := h.Service.Return(r.Context(), assetID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetCurrentAssignment(w http.ResponseWriter, r *http.Request) {
	assetID, err := h.IDParam(r, "id")
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	current, err := h.Service.CurrentAssignment(r.Context(), assetID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, current)
}

func isEmptyBody(err error) bool {
	return errors.Is(err, io.EOF)
}
