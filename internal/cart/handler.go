package cart

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
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.getCart)
	r.Post("/", h.addToCart)
	r.Put("/", h.updateQuantity)
	r.Delete("/", h.removeFromCart)
	r.Delete("/clear", h.clearCart)
}

type mutateRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	items, err := h.svc.GetCart(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("get cart failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mutateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.svc.AddToCart(r.Context(), AddParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeCartError(w, r, err, "add to cart failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mutateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := h.svc.UpdateQuantity(r.Context(), UpdateParams{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeCartError(w, r, err, "update cart failed")
		return
	}

	if item == nil {
		// Quantity dropped to zero; the row is gone.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	var req mutateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.svc.RemoveFromCart(r.Context(), userID, req.ProductID); err != nil {
		h.writeCartError(w, r, err, "remove from cart failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := h.svc.ClearCart(r.Context(), userID); err != nil {
		logger.FromCtx(r.Context()).Error("clear cart failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeCartError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrCartItemNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientStock):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.FromCtx(r.Context()).Error(logMsg, zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, logMsg)
	}
}
