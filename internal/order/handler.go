package order

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
	r.Get("/", h.list)
	r.Post("/checkout", h.checkout)
	r.Get("/{orderNumber}", h.detail)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	o, err := h.svc.Checkout(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrCartEmpty) {
			httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("checkout failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.svc.List(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list orders failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load orders")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	orderNumber := chi.URLParam(r, "orderNumber")

	o, err := h.svc.Detail(r.Context(), userID, orderNumber)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrForbidden):
			// Do not leak whether the order exists.
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
		default:
			logger.FromCtx(r.Context()).Error("order detail failed", zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "failed to load order")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, o)
}
