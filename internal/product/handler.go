package product

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
	r.Get("/{slug}", h.detail)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := ListOptions{
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}
	if v := q.Get("featured"); v != "" {
		featured := v == "true" || v == "1"
		opts.Featured = &featured
	}
	if limit, err := utils.ToUint(q.Get("limit")); err == nil {
		opts.Limit = uint16(limit)
	}
	if page, err := utils.ToUint(q.Get("page")); err == nil {
		opts.Page = uint16(page)
	}

	products, err := h.svc.List(r.Context(), opts)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list products failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, err := h.svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, ErrNotFound.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("product detail failed", zap.String("slug", slug), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, p)
}
