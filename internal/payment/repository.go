package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type Repository interface {
	Save(ctx context.Context, p *Payment) error
	GetByReference(ctx context.Context, referenceID string) (*Payment, error)
	SetStatus(ctx context.Context, referenceID, status string) error
	// ListPendingReferences returns references still awaiting a terminal
	// gateway status, oldest first, for the background sweeper.
	ListPendingReferences(ctx context.Context, olderThan time.Duration, limit int) ([]string, error)

	SaveWebhook(ctx context.Context, eventID, eventType, referenceID string,
		payload json.RawMessage, signatureValid bool) (webhookID int64, isDuplicate bool, err error)
	MarkWebhookProcessed(ctx context.Context, webhookID int64) error
	MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, p *Payment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payments (
			reference_id, target_kind, donation_id, order_number,
			amount, gross_amount, status, snap_token, redirect_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		p.ReferenceID, p.TargetKind, p.DonationID, p.OrderNumber,
		p.Amount, p.GrossAmount, p.Status, p.SnapToken, p.RedirectURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repository) GetByReference(ctx context.Context, referenceID string) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, reference_id, target_kind, donation_id, order_number,
			amount, gross_amount, status, snap_token, redirect_url,
			created_at, updated_at
		FROM payments WHERE reference_id = $1
	`, referenceID).Scan(
		&p.ID, &p.ReferenceID, &p.TargetKind, &p.DonationID, &p.OrderNumber,
		&p.Amount, &p.GrossAmount, &p.Status, &p.SnapToken, &p.RedirectURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) SetStatus(ctx context.Context, referenceID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE reference_id = $2
	`, status, referenceID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListPendingReferences(ctx context.Context, olderThan time.Duration, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT reference_id
		FROM payments
		WHERE status IN ('pending', 'authorize')
		  AND created_at < NOW() - $1::interval
		ORDER BY created_at ASC
		LIMIT $2
	`, olderThan.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *repository) SaveWebhook(
	ctx context.Context,
	eventID string,
	eventType string,
	referenceID string,
	payload json.RawMessage,
	signatureValid bool,
) (int64, bool, error) {

	const q = `
	INSERT INTO payment_webhooks (
		provider,
		event_type,
		event_id,
		reference_id,
		signature_valid,
		payload
	)
	VALUES ('MIDTRANS', $1, $2, $3, $4, $5)
	ON CONFLICT (provider, event_id)
	DO NOTHING
	RETURNING id;
	`

	var id int64
	err := r.db.QueryRowContext(ctx, q,
		eventType, eventID, referenceID, signatureValid, payload,
	).Scan(&id)

	if err != nil {
		// Duplicate delivery: idempotent success.
		if errors.Is(err, sql.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, err
	}

	return id, false, nil
}

func (r *repository) MarkWebhookProcessed(ctx context.Context, webhookID int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_webhooks
		SET processed_at = NOW()
		WHERE id = $1
	`, webhookID)
	return err
}

func (r *repository) MarkWebhookFailed(ctx context.Context, webhookID int64, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_webhooks
		SET process_error = $2
		WHERE id = $1
	`, webhookID, reason)
	return err
}
