package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perfect-cfw/internal/domain"
)

func applicationColumns() []string {
	return []string{
		"id", "user_id", "discord_id", "real_name", "real_age", "country",
		"answers", "status", "reviewed_by", "reviewed_at", "rejection_reason",
		"created_at", "updated_at",
	}
}

func applicationRow(id, userID, reviewerID uuid.UUID, status domain.ApplicationStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(), userID.String(), "123456789", "Jamie", 21, "Norway",
		[]byte("[]"), string(status), reviewerID.String(), now, nil,
		now, now,
	}
}

func pendingApplication(userID uuid.UUID) *domain.Application {
	return &domain.Application{
		ID:        uuid.New(),
		UserID:    userID,
		DiscordID: "123456789",
		RealName:  "Jamie",
		RealAge:   21,
		Country:   "Norway",
		Answers:   domain.AnswerList{},
		Status:    domain.AppStatusPending,
	}
}

func TestApplicationSubmit(t *testing.T) {
	lockQuery := regexp.QuoteMeta(`SELECT has_applied FROM users WHERE id = $1 FOR UPDATE`)

	t.Run("inserts and flips the user flags in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)
		app := pendingApplication(uuid.New())

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(app.UserID).
			WillReturnRows(sqlmock.NewRows([]string{"has_applied"}).AddRow(false))
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))
		mock.ExpectExec(regexp.QuoteMeta("SET has_applied = TRUE, application_status = $2")).
			WithArgs(app.UserID, string(domain.AppStatusPending)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Submit(context.Background(), app)

		require.NoError(t, err)
		assert.False(t, app.CreatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("locked row already applied aborts without inserting", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)
		app := pendingApplication(uuid.New())

		mock.ExpectBegin()
		mock.ExpectQuery(lockQuery).
			WithArgs(app.UserID).
			WillReturnRows(sqlmock.NewRows([]string{"has_applied"}).AddRow(true))
		mock.ExpectRollback()

		err := repo.Submit(context.Background(), app)

		assert.ErrorIs(t, err, ErrAlreadyApplied)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestApplicationDecide(t *testing.T) {
	decideQuery := regexp.QuoteMeta(`WHERE id = $1 AND status = 'pending'`)

	t.Run("accepts a pending application and mirrors the status", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)
		id := uuid.New()
		userID := uuid.New()
		reviewerID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectQuery(decideQuery).
			WillReturnRows(sqlmock.NewRows(applicationColumns()).
				AddRow(applicationRow(id, userID, reviewerID, domain.AppStatusAccepted)...))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET application_status = $2`)).
			WithArgs(userID, string(domain.AppStatusAccepted)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		app, err := repo.Decide(context.Background(), id, domain.AppStatusAccepted, reviewerID, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.AppStatusAccepted, app.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided application returns ErrNotPending", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewApplicationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(decideQuery).
			WillReturnRows(sqlmock.NewRows(applicationColumns()))
		mock.ExpectRollback()

		app, err := repo.Decide(context.Background(), uuid.New(), domain.AppStatusRejected, uuid.New(), nil)

		assert.ErrorIs(t, err, ErrNotPending)
		assert.Nil(t, app)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
