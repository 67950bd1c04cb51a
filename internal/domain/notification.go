package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotifApplicationAccepted NotificationType = "application_accepted"
	NotifApplicationRejected NotificationType = "application_rejected"
	NotifGeneral             NotificationType = "general"
)

type Notification struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	UserID          uuid.UUID        `json:"user_id" db:"user_id"`
	Type            NotificationType `json:"type" db:"type"`
	Title           string           `json:"title" db:"title"`
	Message         string           `json:"message" db:"message"`
	RejectionReason *string          `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApplicationID   *uuid.UUID       `json:"application_id,omitempty" db:"application_id"`
	IsRead          bool             `json:"is_read" db:"is_read"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}
