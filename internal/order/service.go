package order

import (
	"context"

	"github.com/nj-ramadhan/barakah-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	List(ctx context.Context, userID uint) ([]*Order, error)
	Detail(ctx context.Context, userID uint, orderNumber string) (*Order, error)
	MarkPaid(ctx context.Context, orderNumber string) error
	MarkFailed(ctx context.Context, orderNumber string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	o, err := s.repo.CreateFromCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("checkout completed",
		zap.Uint("user_id", userID),
		zap.String("order_number", o.OrderNumber),
	)
	return o, nil
}

func (s *service) List(ctx context.Context, userID uint) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Detail returns the order only when it belongs to the requesting user.
func (s *service) Detail(ctx context.Context, userID uint, orderNumber string) (*Order, error) {
	o, err := s.repo.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *service) MarkPaid(ctx context.Context, orderNumber string) error {
	return s.repo.SetStatus(ctx, orderNumber, StatusPaid)
}

func (s *service) MarkFailed(ctx context.Context, orderNumber string) error {
	return s.repo.SetStatus(ctx, orderNumber, StatusFailed)
}
