package wishlist

import (
	"errors"
	"net/http"

	"github.com/nj-ramadhan/barakah-be/internal/httpx"
	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Delete("/", h.remove)
}

type mutateRequest struct {
	ProductID uint `json:"product_id"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.repo.List(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list wishlist failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load wishlist")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mutateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.ProductID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "product_id required")
		return
	}

	if err := h.repo.Add(r.Context(), userID, req.ProductID); err != nil {
		logger.FromCtx(r.Context()).Error("add wishlist failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to add to wishlist")
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mutateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.ProductID == 0 {
		httpx.WriteError(w, http.StatusBadRequest, "product_id required")
		return
	}

	if err := h.repo.Remove(r.Context(), userID, req.ProductID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("remove wishlist failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to remove from wishlist")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
