package cart

import (
	"context"
	"database/sql"

	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/product"

	"go.uber.org/zap"
)

type Repository interface {
	GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error)
	CreateItem(ctx context.Context, params AddParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error
	GetCartRows(ctx context.Context, userID uint) ([]*CartItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error) {
	item := &CartItem{Product: &product.Product{}}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at, updated_at
		FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)

	err := row.Scan(
		&item.ID, &item.UserID, &item.Product.ID,
		&item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) CreateItem(ctx context.Context, params AddParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateCartItem"),
		zap.Uint("user_id", params.UserID),
		zap.Uint("product_id", params.ProductID),
	)

	item := &CartItem{Product: &product.Product{}}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO carts (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`, params.UserID, params.ProductID, params.Quantity).Scan(
		&item.ID, &item.UserID, &item.Product.ID,
		&item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item created", zap.Uint("cart_item_id", item.ID))
	return item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error) {
	item := &CartItem{Product: &product.Product{}}

	err := r.db.QueryRowContext(ctx, `
		UPDATE carts
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, product_id, quantity, created_at, updated_at
	`, quantity, itemID).Scan(
		&item.ID, &item.UserID, &item.Product.ID,
		&item.Quantity, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) RemoveItem(ctx context.Context, userID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM carts
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	return err
}

func (r *repository) GetCartRows(ctx context.Context, userID uint) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetCartRows"),
		zap.Uint("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			c.id, c.user_id, c.quantity, c.created_at, c.updated_at,
			p.id, p.slug, p.title, p.thumbnail, p.price, p.discount, p.unit, p.stock
		FROM carts c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
	`, userID)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*CartItem
	for rows.Next() {
		item := &CartItem{Product: &product.Product{}}
		err := rows.Scan(
			&item.ID, &item.UserID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt,
			&item.Product.ID, &item.Product.Slug, &item.Product.Title, &item.Product.Thumbnail,
			&item.Product.Price, &item.Product.Discount, &item.Product.Unit, &item.Product.Stock,
		)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
