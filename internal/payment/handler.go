package payment

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/nj-ramadhan/barakah-be/internal/campaign"
	"github.com/nj-ramadhan/barakah-be/internal/donation"
	"github.com/nj-ramadhan/barakah-be/internal/httpx"
	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/order"
	"github.com/nj-ramadhan/barakah-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc Service
	// Kicked after each accepted notification so pending sweeps run
	// soon instead of waiting for the next tick.
	OnNotification func()
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes expects OptionalAuth so donor ids attach when a
// signed-in user donates.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/donations", h.createDonationPayment)
	r.Post("/confirm", h.confirm)
	r.Get("/{referenceID}/status", h.status)
	r.Get("/instructions", h.instructions)
}

func (h *Handler) RegisterPrivateRoutes(r chi.Router) {
	r.Post("/orders/{orderNumber}/token", h.createOrderPayment)
}

func (h *Handler) RegisterWebhookRoutes(r chi.Router) {
	r.Post("/notification", h.notification)
}

type donationPaymentRequest struct {
	CampaignSlug string  `json:"campaign_slug"`
	Amount       int64   `json:"amount"`
	DonorName    string  `json:"donor_name"`
	DonorPhone   string  `json:"donor_phone"`
	DonorEmail   *string `json:"donor_email"`
	IsAnonymous  bool    `json:"is_anonymous"`
	Message      string  `json:"message"`
}

func (h *Handler) createDonationPayment(w http.ResponseWriter, r *http.Request) {
	var req donationPaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := DonationPaymentInput{
		CampaignSlug: req.CampaignSlug,
		Amount:       req.Amount,
		DonorName:    req.DonorName,
		DonorPhone:   req.DonorPhone,
		DonorEmail:   req.DonorEmail,
		IsAnonymous:  req.IsAnonymous,
		Message:      req.Message,
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		input.DonorID = &userID
	}

	result, err := h.svc.CreateDonationPayment(r.Context(), input)
	if err != nil {
		h.writeDonationPaymentError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) writeDonationPaymentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, donation.ErrInvalidAmount),
		errors.Is(err, donation.ErrMissingDonorName),
		errors.Is(err, donation.ErrMissingDonorPhone):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, campaign.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, campaign.ErrInactive), errors.Is(err, campaign.ErrExpired):
		httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.FromCtx(r.Context()).Error("donation payment failed", zap.Error(err))
		httpx.WriteError(w, http.StatusBadGateway, "payment gateway unavailable")
	}
}

func (h *Handler) createOrderPayment(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	orderNumber := chi.URLParam(r, "orderNumber")

	token, err := h.svc.CreateOrderPayment(r.Context(), userID, orderNumber)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound), errors.Is(err, order.ErrForbidden):
			httpx.WriteError(w, http.StatusNotFound, order.ErrNotFound.Error())
		default:
			logger.FromCtx(r.Context()).Error("order payment failed", zap.Error(err))
			httpx.WriteError(w, http.StatusBadGateway, "payment gateway unavailable")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, token)
}

type confirmRequest struct {
	ReferenceID   string `json:"reference_id"`
	TransactionID string `json:"transaction_id"`
}

// confirm handles the payment widget's success/pending callback. When
// the backend cannot acknowledge the result, the client gets a 502
// with the transaction id so support can reconcile by hand; the
// sweeper retries on its own.
func (h *Handler) confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := httpx.DecodeJSON(r, &req); err != nil || req.ReferenceID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "reference_id required")
		return
	}

	view, err := h.svc.Confirm(r.Context(), req.ReferenceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("payment confirm failed",
			zap.String("reference_id", req.ReferenceID),
			zap.String("transaction_id", req.TransactionID),
			zap.Error(err),
		)
		httpx.WriteJSON(w, http.StatusBadGateway, map[string]string{
			"error":          "failed to confirm payment",
			"transaction_id": req.TransactionID,
		})
		return
	}

	if h.OnNotification != nil {
		h.OnNotification()
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")

	view, err := h.svc.Status(r.Context(), referenceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("status check failed",
			zap.String("reference_id", referenceID),
			zap.Error(err),
		)
		httpx.WriteError(w, http.StatusBadGateway, "payment gateway unavailable")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) instructions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	method := q.Get("method")

	vars := InstructionVars{}
	if amount, err := utils.ToUint(q.Get("amount")); err == nil && amount > 0 {
		vars["amount"] = "Rp " + utils.FormatIDR(int64(amount))
	}
	if bank, ok := donation.BankAccounts[method]; ok {
		vars["account_number"] = bank.Number
		vars["account_name"] = bank.FullName
	}

	steps := InjectVariables(GetInstructions(method), vars)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"method": method,
		"steps":  steps,
	})
}

func (h *Handler) notification(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	defer r.Body.Close()

	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.svc.HandleNotification(r.Context(), &n, body); err != nil {
		if errors.Is(err, ErrBadSignature) {
			httpx.WriteError(w, http.StatusUnauthorized, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("notification processing failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to process notification")
		return
	}

	if h.OnNotification != nil {
		h.OnNotification()
	}

	w.WriteHeader(http.StatusOK)
}
