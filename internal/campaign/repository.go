package campaign

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type ListOptions struct {
	Search   string
	Category string
	Featured *bool
	Limit    uint16
	Page     uint16
}

type Repository interface {
	List(ctx context.Context, opts ListOptions) ([]*Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*Campaign, error)
	GetByID(ctx context.Context, id uint) (*Campaign, error)
	ListUpdates(ctx context.Context, campaignID uint) ([]*Update, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const campaignColumns = `
	id, slug, title, description, category, thumbnail,
	target_amount, current_amount, is_featured, is_active, deadline, created_at`

func scanCampaign(row interface{ Scan(...any) error }) (*Campaign, error) {
	var c Campaign
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Description, &c.Category, &c.Thumbnail,
		&c.TargetAmount, &c.CurrentAmount, &c.IsFeatured, &c.IsActive, &c.Deadline, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Campaign, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListCampaigns"),
	)
	start := time.Now()

	limit := opts.Limit
	if limit == 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := opts.Page
	if page == 0 {
		page = 1
	}
	offset := int(page-1) * int(limit)

	where := []string{"is_active = TRUE"}
	args := []any{}

	if opts.Search != "" {
		args = append(args, "%"+opts.Search+"%")
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if opts.Category != "" {
		args = append(args, opts.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if opts.Featured != nil {
		args = append(args, *opts.Featured)
		where = append(where, fmt.Sprintf("is_featured = $%d", len(args)))
	}

	query := `SELECT` + campaignColumns + `
	FROM campaigns
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	defer rows.Close()

	result := make([]*Campaign, 0, limit)
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+campaignColumns+` FROM campaigns WHERE slug = $1`, slug)

	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Campaign, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+campaignColumns+` FROM campaigns WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (r *repository) ListUpdates(ctx context.Context, campaignID uint) ([]*Update, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, title, description, created_at
		FROM campaign_updates
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*Update
	for rows.Next() {
		var u Update
		if err := rows.Scan(&u.ID, &u.CampaignID, &u.Title, &u.Description, &u.CreatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, &u)
	}
	return updates, rows.Err()
}
