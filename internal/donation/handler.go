package donation

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/campaign"
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

// RegisterPublicRoutes mounts routes usable without a session.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/banks", h.banks)
	r.Get("/{slug}/donations", h.listByCampaign)
	r.Post("/{slug}/create-donation", h.createManual)
}

// RegisterPrivateRoutes mounts the donor history behind auth.
func (h *Handler) RegisterPrivateRoutes(r chi.Router) {
	r.Get("/history", h.history)
}

func (h *Handler) banks(w http.ResponseWriter, r *http.Request) {
	accounts := make([]BankAccount, 0, len(BankAccounts))
	for _, code := range []string{MethodBSI, MethodBJB} {
		accounts = append(accounts, BankAccounts[code])
	}
	httpx.WriteJSON(w, http.StatusOK, accounts)
}

// createManual handles the multipart manual-confirmation form:
// donor identity, transfer details and the proof image.
func (h *Handler) createManual(w http.ResponseWriter, r *http.Request) {
	log := logger.FromCtx(r.Context())
	slug := chi.URLParam(r, "slug")

	// One extra MB of headroom for the non-file fields; the proof
	// itself is checked against its own 2MB limit.
	r.Body = http.MaxBytesReader(w, r.Body, MaxProofSize+1<<20)
	if err := r.ParseMultipartForm(MaxProofSize); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	amount, err := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, ErrInvalidAmount.Error())
		return
	}

	input := ManualConfirmationInput{
		CampaignSlug:  slug,
		Amount:        amount,
		DonorName:     r.FormValue("donor_name"),
		DonorPhone:    r.FormValue("donor_phone"),
		IsAnonymous:   r.FormValue("is_anonymous") == "true",
		Message:       r.FormValue("message"),
		PaymentMethod: r.FormValue("payment_method"),
		SourceBank:    r.FormValue("source_bank"),
		SourceAccount: r.FormValue("source_account"),
		AccountName:   r.FormValue("account_name"),
	}

	if email := strings.TrimSpace(r.FormValue("donor_email")); email != "" {
		input.DonorEmail = &email
	}
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		input.DonorID = &userID
	}
	if dateStr := r.FormValue("transfer_date"); dateStr != "" {
		if date, err := time.Parse("2006-01-02", dateStr); err == nil {
			input.TransferDate = date
		}
	}

	file, _, err := r.FormFile("proof_file")
	if err == nil {
		defer file.Close()
		input.Proof, err = io.ReadAll(io.LimitReader(file, MaxProofSize+1))
		if err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "failed to read proof file")
			return
		}
	}

	result, err := h.svc.CreateManualConfirmation(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrMissingDonorName),
			errors.Is(err, ErrMissingDonorPhone),
			errors.Is(err, ErrMissingProof),
			errors.Is(err, ErrProofTooLarge),
			errors.Is(err, ErrProofBadType),
			errors.Is(err, ErrMissingTransfer),
			errors.Is(err, ErrUnknownMethod):
			httpx.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, campaign.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, campaign.ErrExpired), errors.Is(err, campaign.ErrInactive):
			httpx.WriteError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			log.Error("create donation failed", zap.String("slug", slug), zap.Error(err))
			httpx.WriteError(w, http.StatusInternalServerError, "failed to create donation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) listByCampaign(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	donations, err := h.svc.ListByCampaign(r.Context(), slug)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		logger.FromCtx(r.Context()).Error("list donations failed", zap.String("slug", slug), zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load donations")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, donations)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	donations, err := h.svc.History(r.Context(), userID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("donation history failed", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, "failed to load donation history")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, donations)
}
