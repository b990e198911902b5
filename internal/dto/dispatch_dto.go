package dto

import (
	"time"

	"github.com/google/uuid"
)

// DispatchNotificationMessage is the in-process pipeline payload queued once
// per recipient at send time. The dispatch consumer evaluates the recipient's
// preferences against it; actual channel transport belongs to an external
// collaborator.
type DispatchNotificationMessage struct {
	NotificationId uuid.UUID `json:"notification_id"`
	RecipientId    string    `json:"recipient_id"`
	Category       string    `json:"category"`
	QueuedAt       time.Time `json:"queued_at"`
}
