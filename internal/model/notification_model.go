package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is the stored record for a broadcast or targeted message.
// Recipients must be empty for broadcast and non-empty for targeted; the
// service layer rejects anything else before it reaches the database.
type Notification struct {
	ID              uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string                      `gorm:"type:varchar(200);not null" json:"title"`
	Message         string                      `gorm:"type:text;not null" json:"message"`
	Category        string                      `gorm:"type:varchar(20);not null;default:'system';index:idx_notifications_category" json:"category"`
	DeliveryMode    string                      `gorm:"type:varchar(20);not null;index:idx_notifications_mode" json:"delivery_mode"`
	Recipients      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"recipients"`
	CreatedBy       string                      `gorm:"type:varchar(128);not null;index:idx_notifications_created_by" json:"created_by"`
	SenderAvatarURL *string                     `gorm:"type:text" json:"sender_avatar_url,omitempty"`
	CreatedAt       time.Time                   `gorm:"default:CURRENT_TIMESTAMP;index:idx_notifications_created_at,sort:desc" json:"created_at"`
	UpdatedAt       time.Time                   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
	ReadReceipts    []NotificationReadReceipt   `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE" json:"-"`
}

// NotificationReadReceipt marks a notification as seen by one user.
// The composite primary key makes at-most-one-receipt-per-user a storage
// constraint rather than a convention: concurrent first reads insert with
// ON CONFLICT DO NOTHING and the earliest ReadAt wins.
type NotificationReadReceipt struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey" json:"notification_id"`
	UserID         string    `gorm:"type:varchar(128);primaryKey;index:idx_read_receipts_user" json:"user_id"`
	ReadAt         time.Time `gorm:"not null" json:"read_at"`
}

func (NotificationReadReceipt) TableName() string {
	return "notification_read_receipts"
}
