package entity

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryMode string

const (
	DeliveryModeBroadcast DeliveryMode = "broadcast"
	DeliveryModeTargeted  DeliveryMode = "targeted"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeBroadcast || m == DeliveryModeTargeted
}

type Category string

const (
	CategoryMarketing Category = "marketing"
	CategorySystem    Category = "system"
	CategoryUpdates   Category = "updates"
)

func (c Category) Valid() bool {
	return c == CategoryMarketing || c == CategorySystem || c == CategoryUpdates
}

type Notification struct {
	Id              uuid.UUID
	Title           string
	Message         string
	Category        Category
	DeliveryMode    DeliveryMode
	Recipients      []string
	CreatedBy       string
	SenderAvatarURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VisibleTo reports whether the notification belongs in a user's inbox.
func (n *Notification) VisibleTo(userID string) bool {
	if n.DeliveryMode == DeliveryModeBroadcast {
		return true
	}
	for _, r := range n.Recipients {
		if r == userID {
			return true
		}
	}
	return false
}

type ReadReceipt struct {
	NotificationId uuid.UUID
	UserId         string
	ReadAt         time.Time
}
