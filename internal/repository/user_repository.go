package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE discord_id = $1`

	err := r.db.GetContext(ctx, &user, query, discordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Upsert creates the user on first Discord login and refreshes the cached
// profile fields on every subsequent one. has_applied and application_status
// are intentionally left out of the conflict update: login never touches the
// activation state.
func (r *userRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, discord_id, username, discriminator, nickname, email, avatar, access_token, refresh_token, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (discord_id) DO UPDATE SET
			username = EXCLUDED.username,
			discriminator = EXCLUDED.discriminator,
			nickname = EXCLUDED.nickname,
			email = EXCLUDED.email,
			avatar = EXCLUDED.avatar,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			last_login = NOW(),
			updated_at = NOW()
		RETURNING id, has_applied, application_status, last_login, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.DiscordID, user.Username, user.Discriminator, user.Nickname,
		user.Email, user.Avatar, user.AccessToken, user.RefreshToken,
	).Scan(&user.ID, &user.HasApplied, &user.ApplicationStatus,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt)
}
