package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type RuleSectionRepository interface {
	Create(ctx context.Context, section *domain.RuleSection) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleSection, error)
	ListActive(ctx context.Context) ([]domain.RuleSection, error)
	ListAll(ctx context.Context) ([]domain.RuleSection, error)
	Update(ctx context.Context, section *domain.RuleSection) error
	UpdateRules(ctx context.Context, id uuid.UUID, rules domain.RuleList) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Reorder(ctx context.Context, id uuid.UUID, newOrder int) (*domain.RuleSection, error)
}

type ruleSectionRepository struct {
	db *sqlx.DB
}

func NewRuleSectionRepository(db *sqlx.DB) RuleSectionRepository {
	return &ruleSectionRepository{db: db}
}

// Create appends the section at the end of the ranking: sort_order becomes
// the current maximum plus one, computed inside the insert itself.
func (r *ruleSectionRepository) Create(ctx context.Context, section *domain.RuleSection) error {
	query := `
		INSERT INTO rule_sections (id, title, icon, type, sort_order, active, rules, content, table_headers, table_rows, notes, card_style)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(sort_order) + 1, 0) FROM rule_sections),
			$5, $6, $7, $8, $9, $10, $11)
		RETURNING sort_order, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		section.ID, section.Title, section.Icon, section.Type, section.Active,
		section.Rules, section.Content, section.TableHeaders, section.TableRows,
		section.Notes, section.CardStyle,
	).Scan(&section.SortOrder, &section.CreatedAt, &section.UpdatedAt)
}

func (r *ruleSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RuleSection, error) {
	var section domain.RuleSection
	query := `SELECT * FROM rule_sections WHERE id = $1`

	err := r.db.GetContext(ctx, &section, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *ruleSectionRepository) ListActive(ctx context.Context) ([]domain.RuleSection, error) {
	var sections []domain.RuleSection
	query := `SELECT * FROM rule_sections WHERE active = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &sections, query)
	return sections, err
}

func (r *ruleSectionRepository) ListAll(ctx context.Context) ([]domain.RuleSection, error) {
	var sections []domain.RuleSection
	query := `SELECT * FROM rule_sections ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &sections, query)
	return sections, err
}

func (r *ruleSectionRepository) Update(ctx context.Context, section *domain.RuleSection) error {
	query := `
		UPDATE rule_sections
		SET title = :title, icon = :icon, type = :type, active = :active,
			rules = :rules, content = :content, table_headers = :table_headers,
			table_rows = :table_rows, notes = :notes, card_style = :card_style,
			updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, section)
	return err
}

func (r *ruleSectionRepository) UpdateRules(ctx context.Context, id uuid.UUID, rules domain.RuleList) error {
	query := `UPDATE rule_sections SET rules = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, rules)
	return err
}

// Delete removes the section and closes the gap it leaves: every section
// ranked below it moves up by one, keeping the ranking dense. Both steps run
// in one transaction.
func (r *ruleSectionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var sortOrder int
	err = tx.GetContext(ctx, &sortOrder, `DELETE FROM rule_sections WHERE id = $1 RETURNING sort_order`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	shiftQuery := `UPDATE rule_sections SET sort_order = sort_order - 1 WHERE sort_order > $1`
	if _, err := tx.ExecContext(ctx, shiftQuery, sortOrder); err != nil {
		return false, err
	}

	return true, tx.Commit()
}

// Reorder moves one section to a new rank and shifts everything between the
// old and new position by one, so the set of sort_order values stays a dense
// permutation of 0..N-1. The whole move is a single transaction.
func (r *ruleSectionRepository) Reorder(ctx context.Context, id uuid.UUID, newOrder int) (*domain.RuleSection, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var oldOrder int
	err = tx.GetContext(ctx, &oldOrder, `SELECT sort_order FROM rule_sections WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if newOrder > oldOrder {
		shiftDown := `UPDATE rule_sections SET sort_order = sort_order - 1 WHERE sort_order > $1 AND sort_order <= $2`
		if _, err := tx.ExecContext(ctx, shiftDown, oldOrder, newOrder); err != nil {
			return nil, err
		}
	} else if newOrder < oldOrder {
		shiftUp := `UPDATE rule_sections SET sort_order = sort_order + 1 WHERE sort_order >= $1 AND sort_order < $2`
		if _, err := tx.ExecContext(ctx, shiftUp, newOrder, oldOrder); err != nil {
			return nil, err
		}
	}

	var section domain.RuleSection
	placeQuery := `UPDATE rule_sections SET sort_order = $2, updated_at = NOW() WHERE id = $1 RETURNING *`
	if err := tx.GetContext(ctx, &section, placeQuery, id, newOrder); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &section, nil
}
