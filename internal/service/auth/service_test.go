package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/domain"
)

type mockAdminRepo struct {
	mock.Mock
}

func (m *mockAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *mockAdminRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *mockAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *mockAdminRepo) GetActiveByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *mockAdminRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockAdminRepo) List(ctx context.Context) ([]domain.Admin, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Admin), args.Error(1)
}

func (m *mockAdminRepo) SetRole(ctx context.Context, id uuid.UUID, role domain.AdminRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockAdminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		SuperAdminPassword: "hunter2",
	}
}

func testAdmin(password string) *domain.Admin {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.Admin{
		ID:           uuid.New(),
		Username:     "moderator",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Active:       true,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("issues a token that validates back to the same claims", func(t *testing.T) {
		repo := new(mockAdminRepo)
		svc := NewService(repo, testConfig())
		admin := testAdmin("correct-horse")

		repo.On("GetActiveByUsername", ctx, "moderator").Return(admin, nil)

		got, token, err := svc.Login(ctx, domain.LoginInput{Username: "moderator", Password: "correct-horse"})

		require.NoError(t, err)
		assert.Equal(t, admin.ID, got.ID)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, admin.ID, claims.AdminID)
		assert.Equal(t, "moderator", claims.Username)
		assert.Equal(t, domain.RoleAdmin, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockAdminRepo)
		svc := NewService(repo, testConfig())

		repo.On("GetActiveByUsername", ctx, "moderator").Return(testAdmin("correct-horse"), nil)

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "moderator", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown or inactive account", func(t *testing.T) {
		repo := new(mockAdminRepo)
		svc := NewService(repo, testConfig())

		repo.On("GetActiveByUsername", ctx, "ghost").Return(nil, nil)

		_, _, err := svc.Login(ctx, domain.LoginInput{Username: "ghost", Password: "anything"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	svc := NewService(new(mockAdminRepo), testConfig())

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.JWTSecret = "other-secret"
		otherRepo := new(mockAdminRepo)
		otherSvc := NewService(otherRepo, otherCfg)
		admin := testAdmin("pw")
		otherRepo.On("GetActiveByUsername", mock.Anything, "moderator").Return(admin, nil)

		_, token, err := otherSvc.Login(context.Background(), domain.LoginInput{Username: "moderator", Password: "pw"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expiredCfg := testConfig()
		expiredCfg.JWTExpiry = -time.Minute
		expiredRepo := new(mockAdminRepo)
		expiredSvc := NewService(expiredRepo, expiredCfg)
		admin := testAdmin("pw")
		expiredRepo.On("GetActiveByUsername", mock.Anything, "moderator").Return(admin, nil)

		_, token, err := expiredSvc.Login(context.Background(), domain.LoginInput{Username: "moderator", Password: "pw"})
		require.NoError(t, err)

		_, err = expiredSvc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestEnsureSuperAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the account when missing", func(t *testing.T) {
		repo := new(mockAdminRepo)
		svc := NewService(repo, testConfig())

		repo.On("GetByUsername", ctx, "superadmin").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(a *domain.Admin) bool {
			return a.Username == "superadmin" &&
				a.Role == domain.RoleSuperAdmin &&
				a.Active &&
				bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("hunter2")) == nil
		})).Return(nil)

		require.NoError(t, svc.EnsureSuperAdmin(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("no-op when the account exists", func(t *testing.T) {
		repo := new(mockAdminRepo)
		svc := NewService(repo, testConfig())

		repo.On("GetByUsername", ctx, "superadmin").Return(&domain.Admin{Username: "superadmin"}, nil)

		require.NoError(t, svc.EnsureSuperAdmin(ctx))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
