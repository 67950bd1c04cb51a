package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfect-cfw/internal/domain"
)

func strptr(s string) *string { return &s }

func TestUserUpsert(t *testing.T) {
	returning := []string{"id", "has_applied", "application_status", "last_login", "created_at", "updated_at"}

	t.Run("persists every cached profile field including the nickname", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)
		now := time.Now()

		user := &domain.User{
			ID:            uuid.New(),
			DiscordID:     "123456789",
			Username:      "jamie",
			Discriminator: "0",
			Nickname:      strptr("Jamie N"),
			Email:         strptr("jamie@example.com"),
			Avatar:        strptr("a1b2c3"),
			AccessToken:   strptr("access"),
			RefreshToken:  strptr("refresh"),
		}

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (id, discord_id, username, discriminator, nickname, email, avatar, access_token, refresh_token, last_login)")).
			WithArgs(user.ID, "123456789", "jamie", "0", "Jamie N",
				"jamie@example.com", "a1b2c3", "access", "refresh").
			WillReturnRows(sqlmock.NewRows(returning).
				AddRow(user.ID.String(), true, string(domain.AppStatusPending), now, now, now))

		err := repo.Upsert(context.Background(), user)

		require.NoError(t, err)
		assert.True(t, user.HasApplied)
		assert.Equal(t, domain.AppStatusPending, user.ApplicationStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("refreshes the nickname on conflict", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)
		now := time.Now()
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("nickname = EXCLUDED.nickname")).
			WillReturnRows(sqlmock.NewRows(returning).
				AddRow(id.String(), false, string(domain.AppStatusNone), now, now, now))

		err := repo.Upsert(context.Background(), &domain.User{
			ID:        id,
			DiscordID: "123456789",
			Username:  "jamie",
			Nickname:  strptr("Renamed"),
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
