package model

import "time"

// UserNotificationPreference stores per-user delivery settings. Absence of a
// row is equivalent to the defaults returned by entity.DefaultPreferenceRecord.
type UserNotificationPreference struct {
	UserID string `gorm:"type:varchar(128);primaryKey" json:"user_id"`

	EmailEnabled bool `gorm:"default:true" json:"email_enabled"`
	PushEnabled  bool `gorm:"default:true" json:"push_enabled"`
	SmsEnabled   bool `gorm:"default:false" json:"sms_enabled"`

	CategoryMarketing bool `gorm:"default:true" json:"category_marketing"`
	CategorySystem    bool `gorm:"default:true" json:"category_system"`
	CategoryUpdates   bool `gorm:"default:true" json:"category_updates"`

	Frequency string `gorm:"type:varchar(10);default:'immediate'" json:"frequency"`

	QuietHoursEnabled bool   `gorm:"default:false" json:"quiet_hours_enabled"`
	QuietHoursStart   string `gorm:"type:varchar(5);default:'22:00'" json:"quiet_hours_start"`
	QuietHoursEnd     string `gorm:"type:varchar(5);default:'07:00'" json:"quiet_hours_end"`

	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}
