package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

// ErrCodeExhausted is returned by Apply when the conditional increment finds
// no redeemable row: the code is inactive, out of its window, or at its limit.
var ErrCodeExhausted = errors.New("discount code is not redeemable")

type DiscountCodeRepository interface {
	Create(ctx context.Context, code *domain.DiscountCode) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DiscountCode, error)
	GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	List(ctx context.Context) ([]domain.DiscountCode, error)
	ListActive(ctx context.Context) ([]domain.DiscountCode, error)
	Update(ctx context.Context, code *domain.DiscountCode) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Apply(ctx context.Context, code string) (*domain.DiscountCode, error)
}

type discountCodeRepository struct {
	db *sqlx.DB
}

func NewDiscountCodeRepository(db *sqlx.DB) DiscountCodeRepository {
	return &discountCodeRepository{db: db}
}

func (r *discountCodeRepository) Create(ctx context.Context, code *domain.DiscountCode) error {
	query := `
		INSERT INTO discount_codes (id, code, discount_percentage, valid_from, valid_until, is_active, usage_limit, used_count, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		code.ID, code.Code, code.DiscountPercentage, code.ValidFrom, code.ValidUntil,
		code.IsActive, code.UsageLimit, code.UsedCount, code.CreatedBy,
	).Scan(&code.CreatedAt)
}

func (r *discountCodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.DiscountCode, error) {
	var code domain.DiscountCode
	query := `SELECT * FROM discount_codes WHERE id = $1`

	err := r.db.GetContext(ctx, &code, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *discountCodeRepository) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var dc domain.DiscountCode
	query := `SELECT * FROM discount_codes WHERE code = $1`

	err := r.db.GetContext(ctx, &dc, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func (r *discountCodeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM discount_codes WHERE code = $1)`
	err := r.db.GetContext(ctx, &exists, query, code)
	return exists, err
}

func (r *discountCodeRepository) List(ctx context.Context) ([]domain.DiscountCode, error) {
	var codes []domain.DiscountCode
	query := `SELECT * FROM discount_codes ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &codes, query)
	return codes, err
}

func (r *discountCodeRepository) ListActive(ctx context.Context) ([]domain.DiscountCode, error) {
	var codes []domain.DiscountCode
	query := `
		SELECT * FROM discount_codes
		WHERE is_active = TRUE AND valid_from <= NOW() AND valid_until >= NOW()
		ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &codes, query)
	return codes, err
}

func (r *discountCodeRepository) Update(ctx context.Context, code *domain.DiscountCode) error {
	query := `
		UPDATE discount_codes
		SET is_active = :is_active, discount_percentage = :discount_percentage,
			valid_until = :valid_until
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, code)
	return err
}

func (r *discountCodeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM discount_codes WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

// Apply redeems a code with a single conditional increment, so concurrent
// redemptions can never push used_count past the limit.
func (r *discountCodeRepository) Apply(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var dc domain.DiscountCode
	query := `
		UPDATE discount_codes
		SET used_count = used_count + 1
		WHERE code = $1
			AND is_active = TRUE
			AND valid_from <= NOW() AND valid_until >= NOW()
			AND (usage_limit IS NULL OR used_count < usage_limit)
		RETURNING *`

	err := r.db.GetContext(ctx, &dc, query, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeExhausted
	}
	if err != nil {
		return nil, err
	}
	return &dc, nil
}
