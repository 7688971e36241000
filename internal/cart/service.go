package cart

import (
	"context"

	"github.com/nj-ramadhan/barakah-be/internal/product"
)

// Service defines the business logic for carts. Every mutation
// returns the authoritative row so clients reconcile their local view
// from the response instead of trusting optimistic state.
type Service interface {
	AddToCart(ctx context.Context, params AddParams) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) ([]*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateParams) (*CartItem, error)
	RemoveFromCart(ctx context.Context, userID, productID uint) error
	ClearCart(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddToCart adds a product to a user's cart, merging with an existing
// row. The final quantity may never exceed the product's stock, and a
// sold-out product is rejected outright.
func (s *service) AddToCart(ctx context.Context, params AddParams) (*CartItem, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if p.SoldOut() {
		return nil, ErrInsufficientStock
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if finalQty > p.Stock {
		return nil, ErrInsufficientStock
	}

	var item *CartItem
	if existing == nil {
		item, err = s.repo.CreateItem(ctx, AddParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
		})
	} else {
		item, err = s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
	}
	if err != nil {
		return nil, err
	}

	item.Product = p
	return item, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartItem, error) {
	return s.repo.GetCartRows(ctx, userID)
}

// UpdateQuantity sets the quantity of a cart row. Zero or below
// removes the row; anything above stock is rejected.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateParams) (*CartItem, error) {
	if params.Quantity <= 0 {
		if err := s.repo.RemoveItem(ctx, params.UserID, params.ProductID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	p, err := s.productRepo.GetByID(ctx, params.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if params.Quantity > p.Stock {
		return nil, ErrInsufficientStock
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCartItemNotFound
	}

	item, err := s.repo.UpdateItemQuantity(ctx, existing.ID, params.Quantity)
	if err != nil {
		return nil, err
	}

	item.Product = p
	return item, nil
}

func (s *service) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	return s.repo.RemoveItem(ctx, userID, productID)
}

func (s *service) ClearCart(ctx context.Context, userID uint) error {
	return s.repo.ClearCart(ctx, userID)
}
