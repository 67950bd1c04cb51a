package activity

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
)

type LogInput struct {
	Action      domain.ActivityAction
	Description string
	AdminID     *uuid.UUID
	Username    *string
	TargetID    *string
	TargetType  *string
	Metadata    domain.Metadata
	IPAddress   *string
	UserAgent   *string
}

type Service interface {
	Log(ctx context.Context, input LogInput)
	List(ctx context.Context, filter domain.ActivityLogFilter, params domain.PaginationParams) ([]domain.ActivityLog, *domain.Pagination, error)
	Stats(ctx context.Context) (*domain.ActivityLogStats, error)
	Clear(ctx context.Context, olderThanDays int) (int64, error)
}

type service struct {
	activityRepo repository.ActivityLogRepository
}

func NewService(activityRepo repository.ActivityLogRepository) Service {
	return &service{activityRepo: activityRepo}
}

// Log records an audit trail entry. It is best-effort: a failed write is
// logged and never propagated to the caller.
func (s *service) Log(ctx context.Context, input LogInput) {
	entry := &domain.ActivityLog{
		ID:          uuid.New(),
		Action:      input.Action,
		Description: input.Description,
		AdminID:     input.AdminID,
		Username:    input.Username,
		TargetID:    input.TargetID,
		TargetType:  input.TargetType,
		Metadata:    input.Metadata,
		IPAddress:   input.IPAddress,
		UserAgent:   input.UserAgent,
	}

	if err := s.activityRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to write activity log (%s): %v", input.Action, err)
	}
}

func (s *service) List(ctx context.Context, filter domain.ActivityLogFilter, params domain.PaginationParams) ([]domain.ActivityLog, *domain.Pagination, error) {
	params.Validate()

	logs, total, err := s.activityRepo.List(ctx, filter, params)
	if err != nil {
		return nil, nil, err
	}

	pagination := domain.NewPagination(params, total)
	return logs, &pagination, nil
}

func (s *service) Stats(ctx context.Context) (*domain.ActivityLogStats, error) {
	return s.activityRepo.Stats(ctx)
}

func (s *service) Clear(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		olderThanDays = 30
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	return s.activityRepo.DeleteOlderThan(ctx, cutoff)
}
