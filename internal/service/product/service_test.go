package product

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/domain"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepo) ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) SetImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	return m.Called(ctx, id, imageURL).Error(0)
}

func (m *mockProductRepo) Stats(ctx context.Context) (*domain.ProductStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductStats), args.Error(1)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("fills in display defaults", func(t *testing.T) {
		repo := new(mockProductRepo)
		svc := NewService(repo, nil, nil, &config.Config{})

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Product")).Return(nil)

		p, err := svc.Create(ctx, domain.CreateProductInput{
			Name:     "VIP slot",
			Price:    500,
			Category: domain.CategoryVIP,
		})

		require.NoError(t, err)
		assert.True(t, p.Active)
		assert.Equal(t, "In stock", p.StockText)
		assert.Equal(t, "📦", p.Icon)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a blank name", func(t *testing.T) {
		repo := new(mockProductRepo)
		svc := NewService(repo, nil, nil, &config.Config{})

		_, err := svc.Create(ctx, domain.CreateProductInput{
			Name:     "   ",
			Price:    500,
			Category: domain.CategoryVIP,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()

	// The server boots in degraded mode when MinIO is unreachable; an upload
	// against that server must fail cleanly, not panic.
	t.Run("no object storage client", func(t *testing.T) {
		repo := new(mockProductRepo)
		svc := NewService(repo, nil, nil, &config.Config{})
		id := uuid.New()

		p, err := svc.UploadImage(ctx, id, "box.png", "image/png", 128, strings.NewReader("png-bytes"))

		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.Nil(t, p)
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "SetImage", mock.Anything, mock.Anything, mock.Anything)
	})
}
