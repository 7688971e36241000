package donation

import (
	"context"
	"strings"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/campaign"
	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

// ManualConfirmationInput is the multipart form the bank-transfer
// confirmation screen submits.
type ManualConfirmationInput struct {
	CampaignSlug  string
	DonorID       *uint
	Amount        int64
	DonorName     string
	DonorPhone    string
	DonorEmail    *string
	IsAnonymous   bool
	Message       string
	PaymentMethod string
	SourceBank    string
	SourceAccount string
	AccountName   string
	TransferDate  time.Time
	Proof         []byte
}

// ManualConfirmationResult carries the created record plus the
// WhatsApp deep link the client opens for the human confirmation loop.
type ManualConfirmationResult struct {
	Donation     *Donation `json:"donation"`
	WhatsAppLink string    `json:"whatsapp_link"`
}

type Service interface {
	CreateManualConfirmation(ctx context.Context, input ManualConfirmationInput) (*ManualConfirmationResult, error)
	ListByCampaign(ctx context.Context, slug string) ([]*Donation, error)
	History(ctx context.Context, donorID uint) ([]*Donation, error)
}

type service struct {
	repo        Repository
	campaignSvc campaign.Service
	proofs      ProofStore
	adminPhone  string
}

func NewService(repo Repository, campaignSvc campaign.Service, proofs ProofStore, adminPhone string) Service {
	return &service{
		repo:        repo,
		campaignSvc: campaignSvc,
		proofs:      proofs,
		adminPhone:  adminPhone,
	}
}

func (s *service) CreateManualConfirmation(ctx context.Context, input ManualConfirmationInput) (*ManualConfirmationResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("campaign_slug", input.CampaignSlug),
		zap.Int64("amount", input.Amount),
	)

	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(input.DonorName) == "" {
		return nil, ErrMissingDonorName
	}
	if strings.TrimSpace(input.DonorPhone) == "" {
		return nil, ErrMissingDonorPhone
	}

	bank, ok := BankAccounts[input.PaymentMethod]
	if !ok {
		return nil, ErrUnknownMethod
	}

	if input.SourceBank == "" || input.SourceAccount == "" || input.TransferDate.IsZero() {
		return nil, ErrMissingTransfer
	}

	ext, err := ValidateProof(input.Proof)
	if err != nil {
		return nil, err
	}

	// Expired or inactive campaigns reject donations before anything
	// is persisted.
	c, err := s.campaignSvc.EnsureAcceptsDonations(ctx, input.CampaignSlug)
	if err != nil {
		return nil, err
	}

	proofPath, err := s.proofs.Save(input.Proof, ext)
	if err != nil {
		log.Error("failed to store proof file", zap.Error(err))
		return nil, err
	}

	donorName := input.DonorName
	if input.IsAnonymous {
		donorName = AnonymousDonorName
	}

	accountName := input.AccountName
	if accountName == "" {
		accountName = input.DonorName
	}

	d, err := s.repo.Create(ctx, CreateParams{
		CampaignID:    c.ID,
		DonorID:       input.DonorID,
		Amount:        input.Amount,
		DonorName:     donorName,
		DonorPhone:    input.DonorPhone,
		DonorEmail:    input.DonorEmail,
		IsAnonymous:   input.IsAnonymous,
		Message:       input.Message,
		PaymentMethod: input.PaymentMethod,
		SourceBank:    &input.SourceBank,
		SourceAccount: &input.SourceAccount,
		AccountName:   &accountName,
		TransferDate:  &input.TransferDate,
		ProofPath:     &proofPath,
	})
	if err != nil {
		return nil, err
	}

	link := BuildWhatsAppLink(s.adminPhone, ConfirmationMessage{
		AccountName:   accountName,
		CampaignTitle: c.Title,
		Amount:        input.Amount,
		BankFullName:  bank.FullName,
		SourceBank:    input.SourceBank,
		SourceAccount: input.SourceAccount,
		TransferDate:  input.TransferDate,
	})

	if err := s.repo.MarkWhatsAppSent(ctx, d.ID); err != nil {
		// Tracking only; the donation itself is already recorded.
		log.Warn("failed to mark whatsapp sent", zap.Uint("donation_id", d.ID), zap.Error(err))
	}

	return &ManualConfirmationResult{Donation: d, WhatsAppLink: link}, nil
}

func (s *service) ListByCampaign(ctx context.Context, slug string) ([]*Donation, error) {
	c, err := s.campaignSvc.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	donations, err := s.repo.ListVerifiedByCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	// The contributions tab never exposes a hidden donor's real name.
	for _, d := range donations {
		d.DonorName = d.DisplayName()
	}
	return donations, nil
}

func (s *service) History(ctx context.Context, donorID uint) ([]*Donation, error) {
	return s.repo.ListByDonor(ctx, donorID)
}
