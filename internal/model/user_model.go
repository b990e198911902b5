package model

import "time"

// User is a local mirror of the external identity provider's directory.
// ExternalID carries the provider-prefixed identifier (e.g. "auth0|abc123");
// it is the key every notification and preference record references.
type User struct {
	ExternalID string    `gorm:"type:varchar(128);primaryKey" json:"external_id"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex" json:"email"`
	FullName   string    `gorm:"type:varchar(200)" json:"full_name"`
	Role       string    `gorm:"type:varchar(20);default:'user'" json:"role"`
	AvatarURL  *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
