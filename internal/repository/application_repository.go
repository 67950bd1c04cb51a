package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

// ErrNotPending is returned by Decide when the row exists but was already
// moved to a terminal status by an earlier review.
var ErrNotPending = errors.New("application is not pending")

type ApplicationRepository interface {
	Submit(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.Application, error)
	Decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID, reason *string) (*domain.Application, error)
	Stats(ctx context.Context) (*domain.ApplicationStats, error)
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Submit inserts the application and flips the owning user's has_applied /
// application_status flags in one transaction, so two near-simultaneous
// submissions cannot both pass the has_applied check and both insert.
func (r *applicationRepository) Submit(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var hasApplied bool
	lockQuery := `SELECT has_applied FROM users WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &hasApplied, lockQuery, app.UserID); err != nil {
		return err
	}
	if hasApplied {
		return ErrAlreadyApplied
	}

	insertQuery := `
		INSERT INTO applications (id, user_id, discord_id, real_name, real_age, country, answers, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`
	err = tx.QueryRowxContext(ctx, insertQuery,
		app.ID, app.UserID, app.DiscordID, app.RealName, app.RealAge,
		app.Country, app.Answers, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return err
	}

	updateQuery := `
		UPDATE users
		SET has_applied = TRUE, application_status = $2, updated_at = NOW()
		WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateQuery, app.UserID, domain.AppStatusPending); err != nil {
		return err
	}

	return tx.Commit()
}

var ErrAlreadyApplied = errors.New("user has already applied")

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Application, error) {
	var app domain.Application
	query := `SELECT * FROM applications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, &app, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) List(ctx context.Context, status *domain.ApplicationStatus) ([]domain.Application, error) {
	var apps []domain.Application
	if status != nil {
		query := `SELECT * FROM applications WHERE status = $1 ORDER BY created_at DESC`
		err := r.db.SelectContext(ctx, &apps, query, *status)
		return apps, err
	}

	query := `SELECT * FROM applications ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &apps, query)
	return apps, err
}

// Decide moves a pending application to its terminal status and mirrors that
// status onto the owning user inside one transaction. The WHERE status =
// 'pending' guard makes the transition once-only even under a racing second
// review: the loser sees ErrNotPending.
func (r *applicationRepository) Decide(ctx context.Context, id uuid.UUID, status domain.ApplicationStatus, reviewerID uuid.UUID, reason *string) (*domain.Application, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var app domain.Application
	updateQuery := `
		UPDATE applications
		SET status = $2, reviewed_by = $3, reviewed_at = $4, rejection_reason = $5, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING *`
	err = tx.GetContext(ctx, &app, updateQuery, id, status, reviewerID, time.Now(), reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotPending
	}
	if err != nil {
		return nil, err
	}

	mirrorQuery := `UPDATE users SET application_status = $2, updated_at = NOW() WHERE id = $1`
	if _, err := tx.ExecContext(ctx, mirrorQuery, app.UserID, status); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Stats(ctx context.Context) (*domain.ApplicationStats, error) {
	var stats domain.ApplicationStats
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'accepted') AS accepted,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM applications`

	err := r.db.QueryRowxContext(ctx, query).Scan(&stats.Total, &stats.Pending, &stats.Accepted, &stats.Rejected)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
