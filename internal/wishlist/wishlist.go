package wishlist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nj-ramadhan/barakah-be/internal/product"
)

var ErrItemNotFound = errors.New("wishlist item not found")

type WishlistItem struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Product *product.Product `json:"product,omitempty"`
}

type Repository interface {
	Add(ctx context.Context, userID, productID uint) error
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]*WishlistItem, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Add is idempotent: wishing for the same product twice is a no-op.
func (r *repository) Add(ctx context.Context, userID, productID uint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlists (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`, userID, productID)
	return err
}

func (r *repository) Remove(ctx context.Context, userID, productID uint) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM wishlists
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
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) List(ctx context.Context, userID uint) ([]*WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			w.id, w.user_id, w.created_at,
			p.id, p.slug, p.title, p.thumbnail, p.price, p.discount, p.unit, p.stock
		FROM wishlists w
		JOIN products p ON w.product_id = p.id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*WishlistItem
	for rows.Next() {
		item := &WishlistItem{Product: &product.Product{}}
		err := rows.Scan(
			&item.ID, &item.UserID, &item.CreatedAt,
			&item.Product.ID, &item.Product.Slug, &item.Product.Title, &item.Product.Thumbnail,
			&item.Product.Price, &item.Product.Discount, &item.Product.Unit, &item.Product.Stock,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
