package notification

import (
	"context"
	"log"

	"github.com/google/uuid"

	"perfect-cfw/internal/domain"
	"perfect-cfw/internal/repository"
	"perfect-cfw/internal/service/discord"
)

const (
	colorGreen = 0x57F287
	colorRed   = 0xED4245
)

type Service interface {
	NotifyApplicationDecision(ctx context.Context, user *domain.User, app *domain.Application) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	notificationRepo repository.NotificationRepository
	notifier         discord.Notifier
}

func NewService(notificationRepo repository.NotificationRepository, notifier discord.Notifier) Service {
	return &service{
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// NotifyApplicationDecision persists the durable in-app notification first,
// then fires the Discord DM in the background. The DM is best-effort: a
// delivery failure is logged and never reaches the caller, the stored
// notification is the source of truth.
func (s *service) NotifyApplicationDecision(ctx context.Context, user *domain.User, app *domain.Application) error {
	notif := &domain.Notification{
		ID:            uuid.New(),
		UserID:        user.ID,
		ApplicationID: &app.ID,
	}

	var dm discord.DM
	switch app.Status {
	case domain.AppStatusAccepted:
		notif.Type = domain.NotifApplicationAccepted
		notif.Title = "Application accepted"
		notif.Message = "Congratulations! Your member application has been accepted. Welcome to Perfect CFW."
		dm = discord.DM{
			Title:       "Application accepted",
			Description: "Congratulations! Your Perfect CFW member application has been **accepted**. Welcome aboard!",
			Color:       colorGreen,
		}
	case domain.AppStatusRejected:
		notif.Type = domain.NotifApplicationRejected
		notif.Title = "Application rejected"
		notif.Message = "Unfortunately your member application has been rejected."
		notif.RejectionReason = app.RejectionReason
		description := "Unfortunately your Perfect CFW member application has been **rejected**."
		if app.RejectionReason != nil && *app.RejectionReason != "" {
			description += "\n\n**Reason:** " + *app.RejectionReason
		}
		dm = discord.DM{
			Title:       "Application rejected",
			Description: description,
			Color:       colorRed,
		}
	default:
		notif.Type = domain.NotifGeneral
		notif.Title = "Application update"
		notif.Message = "Your member application status has changed."
	}

	if err := s.notificationRepo.Create(ctx, notif); err != nil {
		return err
	}

	discordID := user.DiscordID
	go func() {
		if err := s.notifier.SendDM(context.Background(), discordID, dm); err != nil {
			log.Printf("Failed to send Discord DM to %s: %v", discordID, err)
		}
	}()

	return nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, 50)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.notificationRepo.MarkAsRead(ctx, id)
}

func (s *service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllAsRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.notificationRepo.Delete(ctx, id)
}
