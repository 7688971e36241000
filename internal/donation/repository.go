package donation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type CreateParams struct {
	CampaignID    uint
	DonorID       *uint
	Amount        int64
	DonorName     string
	DonorPhone    string
	DonorEmail    *string
	IsAnonymous   bool
	Message       string
	PaymentMethod string
	SourceBank    *string
	SourceAccount *string
	AccountName   *string
	TransferDate  *time.Time
	ProofPath     *string
}

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Donation, error)
	GetByID(ctx context.Context, id uint) (*Donation, error)
	// SetStatus transitions a donation and, for verified donations,
	// recomputes the campaign's current_amount from the sum of its
	// verified donations inside the same transaction.
	SetStatus(ctx context.Context, id uint, status Status) error
	ListVerifiedByCampaign(ctx context.Context, campaignID uint) ([]*Donation, error)
	ListByDonor(ctx context.Context, donorID uint) ([]*Donation, error)
	MarkWhatsAppSent(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const donationColumns = `
	d.id, d.campaign_id, d.donor_id, d.amount, d.donor_name, d.donor_phone,
	d.donor_email, d.is_anonymous, d.message, d.payment_method, d.payment_status,
	d.source_bank, d.source_account, d.account_name, d.transfer_date, d.proof_path,
	d.whatsapp_sent, d.whatsapp_sent_at, d.created_at`

func scanDonation(row interface{ Scan(...any) error }) (*Donation, error) {
	var d Donation
	err := row.Scan(
		&d.ID, &d.CampaignID, &d.DonorID, &d.Amount, &d.DonorName, &d.DonorPhone,
		&d.DonorEmail, &d.IsAnonymous, &d.Message, &d.PaymentMethod, &d.PaymentStatus,
		&d.SourceBank, &d.SourceAccount, &d.AccountName, &d.TransferDate, &d.ProofPath,
		&d.WhatsAppSent, &d.WhatsAppSentAt, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Donation, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateDonation"),
		zap.Uint("campaign_id", params.CampaignID),
		zap.Int64("amount", params.Amount),
	)

	query := `
	INSERT INTO donations (
		campaign_id, donor_id, amount, donor_name, donor_phone, donor_email,
		is_anonymous, message, payment_method, payment_status,
		source_bank, source_account, account_name, transfer_date, proof_path
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', $10, $11, $12, $13, $14)
	RETURNING id, created_at
	`

	d := &Donation{
		CampaignID:    params.CampaignID,
		DonorID:       params.DonorID,
		Amount:        params.Amount,
		DonorName:     params.DonorName,
		DonorPhone:    params.DonorPhone,
		DonorEmail:    params.DonorEmail,
		IsAnonymous:   params.IsAnonymous,
		Message:       params.Message,
		PaymentMethod: params.PaymentMethod,
		PaymentStatus: StatusPending,
		SourceBank:    params.SourceBank,
		SourceAccount: params.SourceAccount,
		AccountName:   params.AccountName,
		TransferDate:  params.TransferDate,
		ProofPath:     params.ProofPath,
	}

	err := r.db.QueryRowContext(ctx, query,
		params.CampaignID, params.DonorID, params.Amount, params.DonorName,
		params.DonorPhone, params.DonorEmail, params.IsAnonymous, params.Message,
		params.PaymentMethod, params.SourceBank, params.SourceAccount,
		params.AccountName, params.TransferDate, params.ProofPath,
	).Scan(&d.ID, &d.CreatedAt)

	if err != nil {
		log.Error("failed to create donation", zap.Error(err))
		return nil, err
	}

	log.Info("donation created", zap.Uint("donation_id", d.ID))
	return d, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Donation, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+donationColumns+`
		FROM donations d
		WHERE d.id = $1
	`, id)

	d, err := scanDonation(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return d, err
}

func (r *repository) SetStatus(ctx context.Context, id uint, status Status) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "SetDonationStatus"),
		zap.Uint("donation_id", id),
		zap.String("status", string(status)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var campaignID uint
	err = tx.QueryRowContext(ctx, `
		UPDATE donations
		SET payment_status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING campaign_id
	`, status, id).Scan(&campaignID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		log.Error("failed to update donation status", zap.Error(err))
		return err
	}

	// Campaign totals are recomputed, never incremented, so replayed
	// webhooks or repeated confirms cannot double count.
	if status == StatusVerified || status == StatusRejected {
		_, err = tx.ExecContext(ctx, `
			UPDATE campaigns
			SET current_amount = (
				SELECT COALESCE(SUM(amount), 0)
				FROM donations
				WHERE campaign_id = $1 AND payment_status = 'verified'
			)
			WHERE id = $1
		`, campaignID)
		if err != nil {
			log.Error("failed to recompute campaign amount", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("donation status updated", zap.Uint("campaign_id", campaignID))
	return nil
}

func (r *repository) ListVerifiedByCampaign(ctx context.Context, campaignID uint) ([]*Donation, error) {
	return r.list(ctx, "d.campaign_id = $1 AND d.payment_status = 'verified'", campaignID)
}

func (r *repository) ListByDonor(ctx context.Context, donorID uint) ([]*Donation, error) {
	return r.list(ctx, "d.donor_id = $1", donorID)
}

func (r *repository) list(ctx context.Context, where string, arg any) ([]*Donation, error) {
	query := fmt.Sprintf(`
		SELECT%s, c.title
		FROM donations d
		JOIN campaigns c ON d.campaign_id = c.id
		WHERE %s
		ORDER BY d.created_at DESC
	`, donationColumns, where)

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var donations []*Donation
	for rows.Next() {
		var d Donation
		err := rows.Scan(
			&d.ID, &d.CampaignID, &d.DonorID, &d.Amount, &d.DonorName, &d.DonorPhone,
			&d.DonorEmail, &d.IsAnonymous, &d.Message, &d.PaymentMethod, &d.PaymentStatus,
			&d.SourceBank, &d.SourceAccount, &d.AccountName, &d.TransferDate, &d.ProofPath,
			&d.WhatsAppSent, &d.WhatsAppSentAt, &d.CreatedAt,
			&d.CampaignTitle,
		)
		if err != nil {
			return nil, err
		}
		donations = append(donations, &d)
	}
	return donations, rows.Err()
}

func (r *repository) MarkWhatsAppSent(ctx context.Context, id uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE donations
		SET whatsapp_sent = TRUE, whatsapp_sent_at = NOW()
		WHERE id = $1
	`, id)
	return err
}
