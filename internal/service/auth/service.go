package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"perfect-cfw/internal/config"
	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.Admin, string, error)
	ValidateToken(token string) (*Claims, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	EnsureSuperAdmin(ctx context.Context) error
}

type Claims struct {
	AdminID  uuid.UUID        `json:"id"`
	Username string           `json:"username"`
	Role     domain.AdminRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	adminRepo repository.AdminRepository
	cfg       *config.Config
}

func NewService(adminRepo repository.AdminRepository, cfg *config.Config) Service {
	return &service{adminRepo: adminRepo, cfg: cfg}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.Admin, string, error) {
	admin, err := s.adminRepo.GetActiveByUsername(ctx, input.Username)
	if err != nil {
		return nil, "", err
	}
	if admin == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(admin)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (s *service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetAdminByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return s.adminRepo.GetByID(ctx, id)
}

// EnsureSuperAdmin seeds the superadmin account on first boot so a fresh
// deployment is never locked out of the panel.
func (s *service) EnsureSuperAdmin(ctx context.Context) error {
	existing, err := s.adminRepo.GetByUsername(ctx, "superadmin")
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.cfg.SuperAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.Admin{
		ID:           uuid.New(),
		Username:     "superadmin",
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleSuperAdmin,
		Active:       true,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("Seeded superadmin account")
	return nil
}

func (s *service) generateToken(admin *domain.Admin) (string, error) {
	claims := &Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   admin.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
