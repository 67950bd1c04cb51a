package discount

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"perfect-cfw/internal/domain"
)

type mockDiscountRepo struct {
	mock.Mock
}

func (m *mockDiscountRepo) Create(ctx context.Context, code *domain.DiscountCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockDiscountRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DiscountCode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *mockDiscountRepo) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *mockDiscountRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockDiscountRepo) List(ctx context.Context) ([]domain.DiscountCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountCode), args.Error(1)
}

func (m *mockDiscountRepo) ListActive(ctx context.Context) ([]domain.DiscountCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DiscountCode), args.Error(1)
}

func (m *mockDiscountRepo) Update(ctx context.Context, code *domain.DiscountCode) error {
	return m.Called(ctx, code).Error(0)
}

func (m *mockDiscountRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockDiscountRepo) Apply(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

func TestCreateDiscountCode(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-generates an 8 character uppercase code", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		repo.On("ExistsByCode", ctx, mock.AnythingOfType("string")).Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.DiscountCode")).Return(nil)

		dc, err := svc.Create(ctx, domain.CreateDiscountCodeInput{
			DiscountPercentage: 25,
			AutoGenerate:       true,
		}, "superadmin")

		require.NoError(t, err)
		assert.Regexp(t, codePattern, dc.Code)
		assert.True(t, dc.IsActive)
		assert.Equal(t, "superadmin", dc.CreatedBy)
		repo.AssertExpectations(t)
	})

	t.Run("defaults the validity window to 30 days", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		repo.On("ExistsByCode", ctx, "MANUAL01").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.DiscountCode")).Return(nil)

		dc, err := svc.Create(ctx, domain.CreateDiscountCodeInput{
			Code:               "manual01",
			DiscountPercentage: 10,
		}, "superadmin")

		require.NoError(t, err)
		assert.Equal(t, "MANUAL01", dc.Code)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), dc.ValidUntil, time.Minute)
	})

	t.Run("rejects a percentage outside 1..100", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		_, err := svc.Create(ctx, domain.CreateDiscountCodeInput{DiscountPercentage: 0}, "superadmin")
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Create(ctx, domain.CreateDiscountCodeInput{DiscountPercentage: 101}, "superadmin")
		assert.ErrorIs(t, err, ErrInvalidInput)

		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects a duplicate manual code", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		repo.On("ExistsByCode", ctx, "TAKEN").Return(true, nil)

		_, err := svc.Create(ctx, domain.CreateDiscountCodeInput{
			Code:               "taken",
			DiscountPercentage: 10,
		}, "superadmin")

		assert.ErrorIs(t, err, ErrCodeExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestValidateDiscountCode(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes the code and reports days remaining", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		now := time.Now()
		repo.On("GetByCode", ctx, "SUMMER25").Return(&domain.DiscountCode{
			Code:               "SUMMER25",
			DiscountPercentage: 25,
			ValidFrom:          now.AddDate(0, 0, -1),
			ValidUntil:         now.AddDate(0, 0, 7),
			IsActive:           true,
		}, nil)

		view, err := svc.Validate(ctx, "  summer25 ")

		require.NoError(t, err)
		assert.True(t, view.IsValidNow)
		assert.Equal(t, 7, view.DaysRemaining)
	})

	t.Run("exhausted code is invalid but not consumed", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		limit := 5
		now := time.Now()
		repo.On("GetByCode", ctx, "SPENT").Return(&domain.DiscountCode{
			Code:       "SPENT",
			ValidFrom:  now.AddDate(0, 0, -1),
			ValidUntil: now.AddDate(0, 0, 7),
			IsActive:   true,
			UsageLimit: &limit,
			UsedCount:  5,
		}, nil)

		_, err := svc.Validate(ctx, "SPENT")

		assert.ErrorIs(t, err, ErrCodeInvalid)
		repo.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
	})

	t.Run("unknown code", func(t *testing.T) {
		repo := new(mockDiscountRepo)
		svc := NewService(repo)

		repo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := svc.Validate(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCodeNotFound)
	})
}

func TestApplyDiscountCode(t *testing.T) {
	ctx := context.Background()
	repo := new(mockDiscountRepo)
	svc := NewService(repo)

	repo.On("Apply", ctx, "SUMMER25").Return(&domain.DiscountCode{Code: "SUMMER25", UsedCount: 3}, nil)

	dc, err := svc.Apply(ctx, " summer25 ")

	require.NoError(t, err)
	assert.Equal(t, 3, dc.UsedCount)
	repo.AssertExpectations(t)
}
