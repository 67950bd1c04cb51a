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

type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error)
	Update(ctx context.Context, q *domain.Question) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	GetBasic(ctx context.Context) ([]domain.Question, error)
	GetRandom(ctx context.Context, count int) ([]domain.Question, error)
}

type questionRepository struct {
	db *sqlx.DB
}

func NewQuestionRepository(db *sqlx.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, q *domain.Question) error {
	query := `
		INSERT INTO questions (id, text, type, is_required, is_basic, sort_order, active, placeholder, validation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		q.ID, q.Text, q.Type, q.IsRequired, q.IsBasic, q.SortOrder,
		q.Active, q.Placeholder, q.Validation,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var q domain.Question
	query := `SELECT * FROM questions WHERE id = $1`

	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionRepository) List(ctx context.Context, filter domain.QuestionFilter) ([]domain.Question, error) {
	conditions := []string{}
	args := []interface{}{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.IsBasic != nil {
		args = append(args, *filter.IsBasic)
		conditions = append(conditions, fmt.Sprintf("is_basic = $%d", len(args)))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)))
	}

	query := `SELECT * FROM questions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY is_basic DESC, sort_order ASC, created_at DESC"

	var questions []domain.Question
	err := r.db.SelectContext(ctx, &questions, query, args...)
	return questions, err
}

func (r *questionRepository) Update(ctx context.Context, q *domain.Question) error {
	query := `
		UPDATE questions
		SET text = :text, type = :type, is_required = :is_required, is_basic = :is_basic,
			sort_order = :sort_order, active = :active, placeholder = :placeholder,
			validation = :validation, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, q)
	return err
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	return rows > 0, err
}

func (r *questionRepository) GetBasic(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	query := `SELECT * FROM questions WHERE active = TRUE AND is_basic = TRUE ORDER BY sort_order ASC`

	err := r.db.SelectContext(ctx, &questions, query)
	return questions, err
}

// GetRandom samples from the active non-basic pool, one fresh draw per
// application form.
func (r *questionRepository) GetRandom(ctx context.Context, count int) ([]domain.Question, error) {
	var questions []domain.Question
	query := `SELECT * FROM questions WHERE active = TRUE AND is_basic = FALSE ORDER BY RANDOM() LIMIT $1`

	err := r.db.SelectContext(ctx, &questions, query, count)
	return questions, err
}
