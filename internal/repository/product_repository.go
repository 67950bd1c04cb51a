package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SetImage(ctx context.Context, id uuid.UUID, imageURL string) error
	Stats(ctx context.Context) (*domain.ProductStats, error)
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, name_en, price, category, stock, stock_text, image, icon, description, featured, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		p.ID, p.Name, p.NameEn, p.Price, p.Category, p.Stock, p.StockText,
		p.Image, p.Icon, p.Description, p.Featured, p.Active,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	conditions := []string{"active = TRUE"}
	args := []interface{}{}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured != nil && *filter.Featured {
		conditions = append(conditions, "featured = TRUE")
	}

	query := "SELECT * FROM products WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY created_at DESC"

	var products []domain.Product
	err := r.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products
		SET name = :name, name_en = :name_en, price = :price, category = :category,
			stock = :stock, stock_text = :stock_text, image = :image, icon = :icon,
			description = :description, featured = :featured, active = :active,
			updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, p)
	return err
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *productRepository) SetImage(ctx context.Context, id uuid.UUID, imageURL string) error {
	query := `UPDATE products SET image = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, imageURL)
	return err
}

func (r *productRepository) Stats(ctx context.Context) (*domain.ProductStats, error) {
	var stats domain.ProductStats

	countQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE active = TRUE)
		FROM products`
	if err := r.db.QueryRowxContext(ctx, countQuery).Scan(&stats.Total, &stats.Active); err != nil {
		return nil, err
	}

	categoryQuery := `SELECT category, COUNT(*) AS count FROM products GROUP BY category ORDER BY count DESC`
	if err := r.db.SelectContext(ctx, &stats.Categories, categoryQuery); err != nil {
		return nil, err
	}

	return &stats, nil
}
