package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT c.product_id").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "title", "quantity", "price"}).
				AddRow(5, "Kurma Ajwa", 2, 75000).
				AddRow(6, "Madu Hutan", 1, 120000))
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(1, time.Now(), time.Now()))
		mock.ExpectQuery("INSERT INTO order_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO order_items").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
		mock.ExpectExec("DELETE FROM carts").
			WithArgs(uint(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		o, err := repo.CreateFromCart(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, int64(270000), o.TotalPrice)
		assert.Equal(t, StatusPending, o.Status)
		assert.Len(t, o.Items, 2)
		assert.Contains(t, o.OrderNumber, "ORD-")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty cart rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT c.product_id").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "title", "quantity", "price"}))
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, 1)

		assert.ErrorIs(t, err, ErrCartEmpty)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT c.product_id").
			WithArgs(uint(1)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "title", "quantity", "price"}).
				AddRow(5, "Kurma Ajwa", 2, 75000))
		mock.ExpectQuery("INSERT INTO orders").
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = repo.CreateFromCart(ctx, 1)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusPaid, "ORD-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetStatus(ctx, "ORD-1", StatusPaid))
	})

	t.Run("Unknown order number", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		repo := NewRepository(db)

		mock.ExpectExec("UPDATE orders").
			WithArgs(StatusPaid, "ORD-missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetStatus(ctx, "ORD-missing", StatusPaid), ErrNotFound)
	})
}

func TestService_Detail(t *testing.T) {
	ctx := context.Background()

	t.Run("Other user's order is forbidden", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery("SELECT id, order_number").
			WithArgs("ORD-1").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "order_number", "user_id", "total_price", "status", "created_at", "updated_at",
			}).AddRow(1, "ORD-1", 2, 100000, "pending", time.Now(), time.Now()))
		mock.ExpectQuery("SELECT oi.id").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "title", "quantity", "price"}))

		svc := NewService(NewRepository(db))
		_, err = svc.Detail(ctx, 1, "ORD-1")

		assert.ErrorIs(t, err, ErrForbidden)
	})
}
