package course

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, f ListFilter) ([]*Course, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Course), args.Error(1)
}

func (m *MockRepository) GetBySlug(ctx context.Context, slug string) (*Course, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Course), args.Error(1)
}

func (m *MockRepository) Enroll(ctx context.Context, userID, courseID uint) error {
	args := m.Called(ctx, userID, courseID)
	return args.Error(0)
}

func (m *MockRepository) IsEnrolled(ctx context.Context, userID, courseID uint) (bool, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListEnrollments(ctx context.Context, userID uint) ([]*Enrollment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Enrollment), args.Error(1)
}

func TestCourse_FinalPrice(t *testing.T) {
	c := &Course{Price: 150000, Discount: 50000}
	assert.Equal(t, int64(100000), c.FinalPrice())
	assert.False(t, c.Free())

	c = &Course{Price: 50000, Discount: 80000}
	assert.Equal(t, int64(0), c.FinalPrice())
	assert.True(t, c.Free())
}

func TestService_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous visitor skips enrollment check", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBySlug", ctx, "fiqih-muamalah").
			Return(&Course{ID: 3, Price: 100000, Discount: 25000}, nil).Once()

		view, err := svc.GetBySlug(ctx, "fiqih-muamalah", 0)

		require.NoError(t, err)
		assert.Equal(t, int64(75000), view.FinalPrice)
		assert.False(t, view.Enrolled)
		mockRepo.AssertNotCalled(t, "IsEnrolled", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Signed-in user sees enrollment state", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBySlug", ctx, "fiqih-muamalah").Return(&Course{ID: 3}, nil).Once()
		mockRepo.On("IsEnrolled", ctx, uint(1), uint(3)).Return(true, nil).Once()

		view, err := svc.GetBySlug(ctx, "fiqih-muamalah", 1)

		require.NoError(t, err)
		assert.True(t, view.Enrolled)
	})
}

func TestService_Enroll(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBySlug", ctx, "fiqih-muamalah").
			Return(&Course{ID: 3, Slug: "fiqih-muamalah", IsActive: true}, nil).Once()
		mockRepo.On("Enroll", ctx, uint(1), uint(3)).Return(nil).Once()

		err := svc.Enroll(ctx, 1, "fiqih-muamalah")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Inactive course", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBySlug", ctx, "archived").
			Return(&Course{ID: 4, IsActive: false}, nil).Once()

		err := svc.Enroll(ctx, 1, "archived")
		assert.ErrorIs(t, err, ErrInactive)
		mockRepo.AssertNotCalled(t, "Enroll", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing course", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("GetBySlug", ctx, "missing").Return(nil, ErrNotFound).Once()

		err := svc.Enroll(ctx, 1, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
