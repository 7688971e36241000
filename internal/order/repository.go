package order

import (
	"context"
	"database/sql"

	"github.com/nj-ramadhan/barakah-be/internal/logger"
	"github.com/nj-ramadhan/barakah-be/internal/utils"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateFromCart copies the user's cart into a new pending order
	// and clears the cart, all in one transaction.
	CreateFromCart(ctx context.Context, userID uint) (*Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	SetStatus(ctx context.Context, orderNumber string, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFromCart(ctx context.Context, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderFromCart"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT c.product_id, p.title, c.quantity, GREATEST(p.price - p.discount, 0)
		FROM carts c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}

	var items []OrderItem
	var total int64
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ProductID, &it.ProductTitle, &it.Quantity, &it.Price); err != nil {
			rows.Close()
			return nil, err
		}
		total += it.Price * int64(it.Quantity)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	o := &Order{
		OrderNumber: utils.GenerateOrderNumber(),
		UserID:      userID,
		TotalPrice:  total,
		Status:      StatusPending,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, user_id, total_price, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, o.OrderNumber, o.UserID, o.TotalPrice, o.Status).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	for i := range items {
		items[i].OrderID = o.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, o.ID, items[i].ProductID, items[i].Quantity, items[i].Price).Scan(&items[i].ID)
		if err != nil {
			log.Error("failed to insert order item", zap.Error(err))
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	o.Items = items
	log.Info("order created",
		zap.String("order_number", o.OrderNumber),
		zap.Int64("total", o.TotalPrice),
	)
	return o, nil
}

func (r *repository) GetByOrderNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_number, user_id, total_price, status, created_at, updated_at
		FROM orders WHERE order_number = $1
	`, orderNumber).Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repository) listItems(ctx context.Context, orderID uint) ([]OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductTitle, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_number, user_id, total_price, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		err := rows.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.TotalPrice, &o.Status, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		items, err := r.listItems(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	return orders, nil
}

func (r *repository) SetStatus(ctx context.Context, orderNumber string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE order_number = $2
	`, status, orderNumber)
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
