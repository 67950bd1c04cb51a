package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"perfect-cfw/internal/domain"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, entry *domain.ActivityLog) error
	List(ctx context.Context, filter domain.ActivityLogFilter, params domain.PaginationParams) ([]domain.ActivityLog, int64, error)
	Stats(ctx context.Context) (*domain.ActivityLogStats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityLogRepository struct {
	db *sqlx.DB
}

func NewActivityLogRepository(db *sqlx.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, action, description, admin_id, username, target_id, target_type, metadata, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	return r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.Action, entry.Description, entry.AdminID, entry.Username,
		entry.TargetID, entry.TargetType, entry.Metadata, entry.IPAddress, entry.UserAgent,
	).Scan(&entry.CreatedAt)
}

func (r *activityLogRepository) List(ctx context.Context, filter domain.ActivityLogFilter, params domain.PaginationParams) ([]domain.ActivityLog, int64, error) {
	params.Validate()

	conditions := []string{}
	args := []interface{}{}

	if filter.Action != nil {
		args = append(args, *filter.Action)
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)))
	}
	if filter.Username != nil {
		args = append(args, "%"+*filter.Username+"%")
		conditions = append(conditions, fmt.Sprintf("username ILIKE $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM activity_logs"+where, args...); err != nil {
		return nil, 0, err
	}

	args = append(args, params.PageSize, params.Offset())
	query := fmt.Sprintf(
		"SELECT * FROM activity_logs%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args),
	)

	var logs []domain.ActivityLog
	err := r.db.SelectContext(ctx, &logs, query, args...)
	return logs, total, err
}

func (r *activityLogRepository) Stats(ctx context.Context) (*domain.ActivityLogStats, error) {
	var stats domain.ActivityLogStats

	countQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '24 hours'),
			COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
		FROM activity_logs`
	if err := r.db.QueryRowxContext(ctx, countQuery).Scan(&stats.TotalLogs, &stats.LogsLast24, &stats.LogsLast7d); err != nil {
		return nil, err
	}

	topQuery := `
		SELECT action, COUNT(*) AS count
		FROM activity_logs
		GROUP BY action
		ORDER BY count DESC
		LIMIT 10`
	if err := r.db.SelectContext(ctx, &stats.TopActions, topQuery); err != nil {
		return nil, err
	}

	return &stats, nil
}

func (r *activityLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM activity_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
