package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

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
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, slug, title, description, category, thumbnail,
	price, discount, unit, stock, is_featured, is_active, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.Category, &p.Thumbnail,
		&p.Price, &p.Discount, &p.Unit, &p.Stock, &p.IsFeatured, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)

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

	query := `SELECT` + productColumns + `
	FROM products
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY created_at DESC
	LIMIT $` + fmt.Sprint(len(args)+1) + `
	OFFSET $` + fmt.Sprint(len(args)+2)

	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := make([]*Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+productColumns+` FROM products WHERE slug = $1`, slug)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT`+productColumns+` FROM products WHERE id = $1 AND is_active = TRUE`, id)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}
