package cart

import (
	"context"
	"testing"

	"github.com/nj-ramadhan/barakah-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetItemByUserAndProduct(ctx context.Context, userID, productID uint) (*CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) CreateItem(ctx context.Context, params AddParams) (*CartItem, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) UpdateItemQuantity(ctx context.Context, itemID uint, quantity int) (*CartItem, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CartItem), args.Error(1)
}

func (m *MockRepository) RemoveItem(ctx context.Context, userID, productID uint) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockRepository) ClearCart(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRepository) GetCartRows(ctx context.Context, userID uint) ([]*CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CartItem), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, opts product.ListOptions) ([]*product.Product, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySlug(ctx context.Context, slug string) (*product.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func TestService_AddToCart(t *testing.T) {
	ctx := context.Background()
	userID := uint(1)
	productID := uint(5)

	params := AddParams{UserID: userID, ProductID: productID, Quantity: 2}

	t.Run("Success - New Item", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 10}, nil).Once()
		mockRepo.On("GetItemByUserAndProduct", ctx, userID, productID).Return(nil, nil).Once()
		mockRepo.On("CreateItem", ctx, params).Return(&CartItem{ID: 1, Quantity: 2}, nil).Once()

		item, err := svc.AddToCart(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
		assert.NotNil(t, item.Product)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - Merge With Existing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 10}, nil).Once()
		mockRepo.On("GetItemByUserAndProduct", ctx, userID, productID).Return(&CartItem{ID: 1, Quantity: 3}, nil).Once()
		mockRepo.On("UpdateItemQuantity", ctx, uint(1), 5).Return(&CartItem{ID: 1, Quantity: 5}, nil).Once()

		item, err := svc.AddToCart(ctx, params)

		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Zero quantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.AddToCart(ctx, AddParams{UserID: userID, ProductID: productID, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Sold out", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 0}, nil).Once()

		_, err := svc.AddToCart(ctx, params)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Merge exceeding stock", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 4}, nil).Once()
		mockRepo.On("GetItemByUserAndProduct", ctx, userID, productID).Return(&CartItem{ID: 1, Quantity: 3}, nil).Once()

		_, err := svc.AddToCart(ctx, params)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		mockRepo.AssertNotCalled(t, "UpdateItemQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Product not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(nil, product.ErrNotFound).Once()

		_, err := svc.AddToCart(ctx, params)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	userID := uint(1)
	productID := uint(5)

	t.Run("Zero removes the row", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockProductRepository))

		mockRepo.On("RemoveItem", ctx, userID, productID).Return(nil).Once()

		item, err := svc.UpdateQuantity(ctx, UpdateParams{UserID: userID, ProductID: productID, Quantity: 0})

		require.NoError(t, err)
		assert.Nil(t, item)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Above stock rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 3}, nil).Once()

		_, err := svc.UpdateQuantity(ctx, UpdateParams{UserID: userID, ProductID: productID, Quantity: 4})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Missing row", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 10}, nil).Once()
		mockRepo.On("GetItemByUserAndProduct", ctx, userID, productID).Return(nil, nil).Once()

		_, err := svc.UpdateQuantity(ctx, UpdateParams{UserID: userID, ProductID: productID, Quantity: 2})
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockProducts := new(MockProductRepository)
		svc := NewService(mockRepo, mockProducts)

		mockProducts.On("GetByID", ctx, productID).Return(&product.Product{ID: productID, Stock: 10}, nil).Once()
		mockRepo.On("GetItemByUserAndProduct", ctx, userID, productID).Return(&CartItem{ID: 9, Quantity: 1}, nil).Once()
		mockRepo.On("UpdateItemQuantity", ctx, uint(9), 2).Return(&CartItem{ID: 9, Quantity: 2}, nil).Once()

		item, err := svc.UpdateQuantity(ctx, UpdateParams{UserID: userID, ProductID: productID, Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, item.Quantity)
	})
}
