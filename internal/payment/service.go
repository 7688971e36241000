package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/campaign"
	"github.com/nj-ramadhan/barakah-be/internal/donation"
	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/order"
	"github.com/nj-ramadhan/barakah-be/internal/redisx"
	"github.com/nj-ramadhan/barakah-be/internal/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type DonationPaymentInput struct {
	CampaignSlug string
	DonorID      *uint
	Amount       int64
	DonorName    string
	DonorPhone   string
	DonorEmail   *string
	IsAnonymous  bool
	Message      string
}

type DonationPaymentResult struct {
	DonationID      uint   `json:"donation_id"`
	ReferenceID     string `json:"reference_id"`
	Amount          int64  `json:"amount"`
	GrossAmount     int64  `json:"gross_amount"`
	FormattedAmount string `json:"formatted_amount"`
	SnapToken       string `json:"snap_token"`
	RedirectURL     string `json:"redirect_url"`
}

// StatusView is what pollers see: the coarse verdict plus the raw
// gateway status for anyone who needs the detail.
type StatusView struct {
	ReferenceID   string `json:"reference_id"`
	Status        string `json:"status"`
	GatewayStatus string `json:"gateway_status"`
}

func (o Outcome) label() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	}
	return "pending"
}

type Service interface {
	CreateDonationPayment(ctx context.Context, input DonationPaymentInput) (*DonationPaymentResult, error)
	CreateOrderPayment(ctx context.Context, userID uint, orderNumber string) (*SnapToken, error)
	Status(ctx context.Context, referenceID string) (*StatusView, error)
	// Confirm is the widget's onSuccess/onPending callback. The gateway
	// is re-queried rather than trusting the client's claim.
	Confirm(ctx context.Context, referenceID string) (*StatusView, error)
	HandleNotification(ctx context.Context, n *Notification, raw json.RawMessage) error
	// SweepPending refreshes every stale pending payment from the
	// gateway; the background poller drives it.
	SweepPending(ctx context.Context) error
}

type service struct {
	repo        Repository
	gateway     Gateway
	offsets     OffsetRepository
	donations   donation.Repository
	campaignSvc campaign.Service
	orderSvc    order.Service
	rdb         *redis.Client
}

func NewService(
	repo Repository,
	gateway Gateway,
	offsets OffsetRepository,
	donations donation.Repository,
	campaignSvc campaign.Service,
	orderSvc order.Service,
	rdb *redis.Client,
) Service {
	return &service{
		repo:        repo,
		gateway:     gateway,
		offsets:     offsets,
		donations:   donations,
		campaignSvc: campaignSvc,
		orderSvc:    orderSvc,
		rdb:         rdb,
	}
}

func (s *service) CreateDonationPayment(ctx context.Context, input DonationPaymentInput) (*DonationPaymentResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("campaign", input.CampaignSlug),
		zap.Int64("amount", input.Amount),
	)

	if input.Amount <= 0 {
		return nil, donation.ErrInvalidAmount
	}
	if strings.TrimSpace(input.DonorName) == "" {
		return nil, donation.ErrMissingDonorName
	}
	if strings.TrimSpace(input.DonorPhone) == "" {
		return nil, donation.ErrMissingDonorPhone
	}

	c, err := s.campaignSvc.EnsureAcceptsDonations(ctx, input.CampaignSlug)
	if err != nil {
		return nil, err
	}

	offset, err := s.offsets.Lookup(ctx, c.Category)
	if err != nil {
		return nil, err
	}
	gross := ApplyOffset(input.Amount, offset)

	d, err := s.donations.Create(ctx, donation.CreateParams{
		CampaignID:    c.ID,
		DonorID:       input.DonorID,
		Amount:        input.Amount,
		DonorName:     input.DonorName,
		DonorPhone:    input.DonorPhone,
		DonorEmail:    input.DonorEmail,
		IsAnonymous:   input.IsAnonymous,
		Message:       input.Message,
		PaymentMethod: donation.MethodMidtrans,
	})
	if err != nil {
		return nil, err
	}

	ref := DonationReference(d.ID, c.ID)

	email := ""
	if input.DonorEmail != nil {
		email = *input.DonorEmail
	}
	token, err := s.gateway.CreateSnapToken(ctx, SnapRequest{
		ReferenceID:   ref,
		GrossAmount:   gross,
		CustomerName:  input.DonorName,
		CustomerEmail: email,
		CustomerPhone: input.DonorPhone,
		ItemName:      "Donasi: " + c.Title,
	})
	if err != nil {
		log.Error("snap token creation failed", zap.Error(err))
		return nil, err
	}

	p := &Payment{
		ReferenceID: ref,
		TargetKind:  TargetDonation,
		DonationID:  &d.ID,
		Amount:      input.Amount,
		GrossAmount: gross,
		Status:      "pending",
		SnapToken:   token.Token,
		RedirectURL: token.RedirectURL,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	log.Info("donation payment created",
		zap.Uint("donation_id", d.ID),
		zap.String("reference_id", ref),
		zap.Int64("gross_amount", gross),
	)

	return &DonationPaymentResult{
		DonationID:      d.ID,
		ReferenceID:     ref,
		Amount:          input.Amount,
		GrossAmount:     gross,
		FormattedAmount: utils.FormatIDR(gross),
		SnapToken:       token.Token,
		RedirectURL:     token.RedirectURL,
	}, nil
}

func (s *service) CreateOrderPayment(ctx context.Context, userID uint, orderNumber string) (*SnapToken, error) {
	o, err := s.orderSvc.Detail(ctx, userID, orderNumber)
	if err != nil {
		return nil, err
	}

	// A retried checkout must reopen the widget on the token already
	// issued for this order, not mint a second transaction.
	idemKey := fmt.Sprintf(redisx.KeyIdemSnapToken, o.OrderNumber)
	if cached, err := s.rdb.Get(ctx, idemKey).Result(); err == nil {
		var token SnapToken
		if json.Unmarshal([]byte(cached), &token) == nil {
			return &token, nil
		}
	}
	if p, err := s.repo.GetByReference(ctx, o.OrderNumber); err == nil && p.SnapToken != "" {
		token := &SnapToken{Token: p.SnapToken, RedirectURL: p.RedirectURL}
		s.cacheSnapToken(ctx, idemKey, token)
		return token, nil
	}

	username := utils.GetUsernameFromContext(ctx)
	email := utils.GetUserEmailFromContext(ctx)

	token, err := s.gateway.CreateSnapToken(ctx, SnapRequest{
		ReferenceID:   o.OrderNumber,
		GrossAmount:   o.TotalPrice,
		CustomerName:  username,
		CustomerEmail: email,
		ItemName:      fmt.Sprintf("Pesanan %s", o.OrderNumber),
	})
	if err != nil {
		return nil, err
	}

	p := &Payment{
		ReferenceID: o.OrderNumber,
		TargetKind:  TargetOrder,
		OrderNumber: &o.OrderNumber,
		Amount:      o.TotalPrice,
		GrossAmount: o.TotalPrice,
		Status:      "pending",
		SnapToken:   token.Token,
		RedirectURL: token.RedirectURL,
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.cacheSnapToken(ctx, idemKey, token)

	return token, nil
}

func (s *service) cacheSnapToken(ctx context.Context, key string, token *SnapToken) {
	if data, err := json.Marshal(token); err == nil {
		_ = s.rdb.Set(ctx, key, data, redisx.TTLIdemSnap).Err()
	}
}

func (s *service) Status(ctx context.Context, referenceID string) (*StatusView, error) {
	cacheKey := fmt.Sprintf(redisx.KeyPaymentStatus, referenceID)

	if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var view StatusView
		if json.Unmarshal([]byte(cached), &view) == nil {
			return &view, nil
		}
	}

	// Existence check first so a poll for an unknown reference is a 404,
	// not a gateway round trip.
	if _, err := s.repo.GetByReference(ctx, referenceID); err != nil {
		return nil, err
	}

	ts, err := s.gateway.GetStatus(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	outcome := ClassifyStatus(ts.TransactionStatus, ts.FraudStatus)
	if err := s.applyOutcome(ctx, referenceID, ts.TransactionStatus, outcome); err != nil {
		logger.FromCtx(ctx).Error("failed applying gateway status",
			zap.String("reference_id", referenceID),
			zap.Error(err),
		)
	}

	view := &StatusView{
		ReferenceID:   referenceID,
		Status:        outcome.label(),
		GatewayStatus: ts.TransactionStatus,
	}

	if data, err := json.Marshal(view); err == nil {
		ttl := redisx.TTLStatusCache
		if outcome.Terminal() {
			ttl = time.Hour
		}
		_ = s.rdb.Set(ctx, cacheKey, data, ttl).Err()
	}
	return view, nil
}

func (s *service) Confirm(ctx context.Context, referenceID string) (*StatusView, error) {
	if _, err := s.repo.GetByReference(ctx, referenceID); err != nil {
		return nil, err
	}

	ts, err := s.gateway.GetStatus(ctx, referenceID)
	if err != nil {
		return nil, err
	}

	outcome := ClassifyStatus(ts.TransactionStatus, ts.FraudStatus)
	if err := s.applyOutcome(ctx, referenceID, ts.TransactionStatus, outcome); err != nil {
		return nil, err
	}

	_ = s.rdb.Del(ctx, fmt.Sprintf(redisx.KeyPaymentStatus, referenceID)).Err()

	return &StatusView{
		ReferenceID:   referenceID,
		Status:        outcome.label(),
		GatewayStatus: ts.TransactionStatus,
	}, nil
}

func (s *service) HandleNotification(ctx context.Context, n *Notification, raw json.RawMessage) error {
	log := logger.FromCtx(ctx).With(
		zap.String("reference_id", n.OrderID),
		zap.String("transaction_status", n.TransactionStatus),
	)

	if err := s.gateway.VerifySignature(n); err != nil {
		log.Warn("notification signature rejected")
		return err
	}

	dedupKey := fmt.Sprintf(redisx.KeyWebhookDedup, n.TransactionID, n.TransactionStatus)
	if seen, err := redisx.Exists(ctx, s.rdb, dedupKey); err == nil && seen {
		log.Debug("duplicate notification skipped")
		return nil
	}

	eventID := n.TransactionID + ":" + n.TransactionStatus
	webhookID, duplicate, err := s.repo.SaveWebhook(ctx, eventID, n.TransactionStatus, n.OrderID, raw, true)
	if err != nil {
		return err
	}
	if duplicate {
		return nil
	}

	outcome := ClassifyStatus(n.TransactionStatus, n.FraudStatus)
	if err := s.applyOutcome(ctx, n.OrderID, n.TransactionStatus, outcome); err != nil {
		_ = s.repo.MarkWebhookFailed(ctx, webhookID, err.Error())
		return err
	}

	if err := s.repo.MarkWebhookProcessed(ctx, webhookID); err != nil {
		return err
	}

	_ = s.rdb.Set(ctx, dedupKey, "1", redisx.TTLWebhookDedup).Err()

	// Drop any cached status so the next poll sees the transition.
	_ = s.rdb.Del(ctx, fmt.Sprintf(redisx.KeyPaymentStatus, n.OrderID)).Err()

	log.Info("notification processed")
	return nil
}

// applyOutcome moves the payment row and its donation or order to the
// state the gateway reports. Unknown outcomes are recorded but change
// nothing downstream.
func (s *service) applyOutcome(ctx context.Context, referenceID, gatewayStatus string, outcome Outcome) error {
	p, err := s.repo.GetByReference(ctx, referenceID)
	if err != nil {
		return err
	}

	if err := s.repo.SetStatus(ctx, referenceID, gatewayStatus); err != nil {
		return err
	}

	switch p.TargetKind {
	case TargetDonation:
		if p.DonationID == nil {
			return ErrUnknownReference
		}
		switch outcome {
		case OutcomeSuccess:
			return s.donations.SetStatus(ctx, *p.DonationID, donation.StatusVerified)
		case OutcomeFailed:
			return s.donations.SetStatus(ctx, *p.DonationID, donation.StatusRejected)
		}
	case TargetOrder:
		if p.OrderNumber == nil {
			return ErrUnknownReference
		}
		switch outcome {
		case OutcomeSuccess:
			return s.orderSvc.MarkPaid(ctx, *p.OrderNumber)
		case OutcomeFailed:
			return s.orderSvc.MarkFailed(ctx, *p.OrderNumber)
		}
	}
	return nil
}

func (s *service) SweepPending(ctx context.Context) error {
	refs, err := s.repo.ListPendingReferences(ctx, 10*time.Second, 50)
	if err != nil {
		return err
	}

	log := logger.FromCtx(ctx)
	for _, ref := range refs {
		ts, err := s.gateway.GetStatus(ctx, ref)
		if err != nil {
			log.Warn("sweep status check failed",
				zap.String("reference_id", ref),
				zap.Error(err),
			)
			continue
		}

		outcome := ClassifyStatus(ts.TransactionStatus, ts.FraudStatus)
		if outcome == OutcomePending || outcome == OutcomeUnknown {
			continue
		}
		if err := s.applyOutcome(ctx, ref, ts.TransactionStatus, outcome); err != nil {
			log.Error("sweep transition failed",
				zap.String("reference_id", ref),
				zap.Error(err),
			)
		}
	}
	return nil
}
