package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	GetActiveByUsername(ctx context.Context, username string) (*domain.Admin, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	List(ctx context.Context) ([]domain.Admin, error)
	SetRole(ctx context.Context, id uuid.UUID, role domain.AdminRole) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	query := `
		INSERT INTO admins (id, username, password_hash, email, role, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		admin.ID, admin.Username, admin.PasswordHash, admin.Email, admin.Role, admin.Active,
	).Scan(&admin.CreatedAt, &admin.UpdatedAt)
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	var admin domain.Admin
	query := `SELECT * FROM admins WHERE id = $1`

	err := r.db.GetContext(ctx, &admin, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin
	query := `SELECT * FROM admins WHERE username = $1`

	err := r.db.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) GetActiveByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	var admin domain.Admin
	query := `SELECT * FROM admins WHERE username = $1 AND active = TRUE`

	err := r.db.GetContext(ctx, &admin, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1)`
	err := r.db.GetContext(ctx, &exists, query, username)
	return exists, err
}

func (r *adminRepository) List(ctx context.Context) ([]domain.Admin, error) {
	var admins []domain.Admin
	query := `SELECT * FROM admins ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &admins, query)
	return admins, err
}

func (r *adminRepository) SetRole(ctx context.Context, id uuid.UUID, role domain.AdminRole) error {
	query := `UPDATE admins SET role = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, role)
	return err
}

func (r *adminRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM admins WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
