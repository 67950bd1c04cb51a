package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, key string, value json.RawMessage, description string) (*domain.Setting, error)
}

type settingRepository struct {
	db *sqlx.DB
}

func NewSettingRepository(db *sqlx.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var setting domain.Setting
	query := `SELECT * FROM settings WHERE key = $1`

	err := r.db.GetContext(ctx, &setting, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepository) Upsert(ctx context.Context, key string, value json.RawMessage, description string) (*domain.Setting, error) {
	var setting domain.Setting
	query := `
		INSERT INTO settings (key, value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING *`

	err := r.db.GetContext(ctx, &setting, query, key, []byte(value), description)
	if err != nil {
		return nil, err
	}
	return &setting, nil
}
