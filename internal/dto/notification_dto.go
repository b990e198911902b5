package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendNotificationRequest struct {
	Title        string   `json:"title" validate:"required"`
	Message      string   `json:"message" validate:"required"`
	Category     string   `json:"category" validate:"omitempty,oneof=marketing system updates"`
	DeliveryMode string   `json:"delivery_mode" validate:"required,oneof=broadcast targeted"`
	Recipients   []string `json:"recipients" validate:"omitempty,dive,required"`
}

// NotificationView is a notification annotated with the requesting user's
// read state.
type NotificationView struct {
	Id              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Message         string     `json:"message"`
	Category        string     `json:"category"`
	DeliveryMode    string     `json:"delivery_mode"`
	Recipients      []string   `json:"recipients,omitempty"`
	CreatedBy       string     `json:"created_by"`
	SenderAvatarURL string     `json:"sender_avatar_url,omitempty"`
	IsRead          bool       `json:"is_read"`
	ReadAt          *time.Time `json:"read_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Data  []*NotificationView `json:"data"`
	Total int64               `json:"total"`
	Page  int                 `json:"page"`
	Limit int                 `json:"limit"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
