package user

import (
	"errors"
	"net/http"
	"strings"

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

// RegisterAuthRoutes mounts the public auth endpoints.
func (h *Handler) RegisterAuthRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.Post("/refresh", h.refresh)
}

// RegisterProfileRoutes mounts the private profile endpoints.
func (h *Handler) RegisterProfileRoutes(r chi.Router) {
	r.Get("/me", h.getProfile)
	r.Put("/me", h.updateProfile)
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Email == "" || len(req.Password) < 8 {
		httpx.WriteError(w, http.StatusBadRequest, "username, email and a password of at least 8 characters are required")
		return
	}

	session, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailExists) || errors.Is(err, ErrUsernameExists) {
			httpx.WriteError(w, http.StatusConflict, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("register failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, session)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	session, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.WriteError(w, http.StatusUnauthorized, ErrInvalidLogin.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, session)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.Refresh == "" {
		httpx.WriteError(w, http.StatusBadRequest, "refresh token required")
		return
	}

	session, err := h.svc.Refresh(r.Context(), req.Refresh)
	if err != nil {
		httpx.WriteError(w, http.StatusForbidden, ErrInvalidToken.Error())
		return
	}

	httpx.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("get profile failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var p Profile
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}
	p.UserID = userID

	updated, err := h.svc.UpdateProfile(r.Context(), p)
	if err != nil {
		logger.FromCtx(r.Context()).Error("update profile failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, updated)
}
