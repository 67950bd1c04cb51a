package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

var (
	ErrUsernameExists         = errors.New("username already taken")
	ErrAdminNotFound          = errors.New("admin not found")
	ErrCannotDeleteSuperAdmin = errors.New("superadmin accounts cannot be deleted")
	ErrCannotDeleteSelf       = errors.New("you cannot delete your own account")
	ErrInvalidInput           = errors.New("username and password are required")
)

type Service interface {
	Create(ctx context.Context, input domain.CreateAdminInput) (*domain.Admin, error)
	List(ctx context.Context) ([]domain.Admin, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
}

type service struct {
	adminRepo repository.AdminRepository
}

func NewService(adminRepo repository.AdminRepository) Service {
	return &service{adminRepo: adminRepo}
}

// Create provisions a new panel account. New accounts are always plain
// admins, the superadmin role only ever comes from the boot seed.
func (s *service) Create(ctx context.Context, input domain.CreateAdminInput) (*domain.Admin, error) {
	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		return nil, ErrInvalidInput
	}

	exists, err := s.adminRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Email:        input.Email,
		Role:         domain.RoleAdmin,
		Active:       true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	return admin, nil
}

func (s *service) List(ctx context.Context) ([]domain.Admin, error) {
	return s.adminRepo.List(ctx)
}

// Delete removes an admin account. Superadmins are untouchable and nobody
// can remove the account they are logged in with.
func (s *service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if admin == nil {
		return ErrAdminNotFound
	}

	if admin.Role == domain.RoleSuperAdmin {
		return ErrCannotDeleteSuperAdmin
	}
	if admin.ID == requesterID {
		return ErrCannotDeleteSelf
	}

	return s.adminRepo.Delete(ctx, id)
}
