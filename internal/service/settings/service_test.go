package settings

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"perfect-cfw/internal/domain"
)

type mockSettingRepo struct {
	mock.Mock
}

func (m *mockSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func (m *mockSettingRepo) Upsert(ctx context.Context, key string, value json.RawMessage, description string) (*domain.Setting, error) {
	args := m.Called(ctx, key, value, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Setting), args.Error(1)
}

func TestGetBool(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored value", func(t *testing.T) {
		repo := new(mockSettingRepo)
		svc := NewService(repo)

		repo.On("Get", ctx, domain.SettingApplicationsOpen).
			Return(&domain.Setting{Key: domain.SettingApplicationsOpen, Value: json.RawMessage(`true`)}, nil)

		open, err := svc.GetBool(ctx, domain.SettingApplicationsOpen, false)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("missing key falls back to the default", func(t *testing.T) {
		repo := new(mockSettingRepo)
		svc := NewService(repo)

		repo.On("Get", ctx, "missing").Return(nil, nil)

		open, err := svc.GetBool(ctx, "missing", true)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("malformed value falls back to the default", func(t *testing.T) {
		repo := new(mockSettingRepo)
		svc := NewService(repo)

		repo.On("Get", ctx, "broken").
			Return(&domain.Setting{Key: "broken", Value: json.RawMessage(`"yes"`)}, nil)

		open, err := svc.GetBool(ctx, "broken", false)
		assert.NoError(t, err)
		assert.False(t, open)
	})
}

func TestSetBool(t *testing.T) {
	ctx := context.Background()
	repo := new(mockSettingRepo)
	svc := NewService(repo)

	repo.On("Upsert", ctx, domain.SettingApplicationsOpen, json.RawMessage(`false`), "Whether member applications are open").
		Return(&domain.Setting{}, nil)

	err := svc.SetBool(ctx, domain.SettingApplicationsOpen, false, "Whether member applications are open")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
