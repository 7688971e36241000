package course

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

// RegisterPublicRoutes expects OptionalAuth so detail views can show
// enrollment state for signed-in users.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{slug}", h.detail)
}

func (h *Handler) RegisterPrivateRoutes(r chi.Router) {
	r.Get("/my-courses", h.myCourses)
	r.Post("/{slug}/enroll", h.enroll)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := ListFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
	}
	if limit, err := utils.ToUint(q.Get("limit")); err == nil {
		f.Limit = int(limit)
	}
	if offset, err := utils.ToUint(q.Get("offset")); err == nil {
		f.Offset = int(offset)
	}

	courses, err := h.svc.List(r.Context(), f)
	if err != nil {
		logger.FromCtx(r.Context()).Error("list courses failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load courses")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, courses)
}

func (h *Handler) detail(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	view, err := h.svc.GetBySlug(r.Context(), slug, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("course detail failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load course")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) enroll(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	if err := h.svc.Enroll(r.Context(), userID, slug); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInactive):
			httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			logger.FromCtx(r.Context()).Error("enroll failed", zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "failed to enroll")
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) myCourses(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	enrollments, err := h.svc.MyCourses(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("my courses failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load courses")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, enrollments)
}
