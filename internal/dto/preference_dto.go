package dto

import "time"

type ChannelsPayload struct {
	Email bool `json:"email"`
	Push  bool `json:"push"`
	Sms   bool `json:"sms"`
}

type CategoriesPayload struct {
	Marketing bool `json:"marketing"`
	System    bool `json:"system"`
	Updates   bool `json:"updates"`
}

type QuietHoursPayload struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start" validate:"omitempty,len=5"`
	End     string `json:"end" validate:"omitempty,len=5"`
}

// UpdatePreferenceRequest carries a partial update: nil sub-objects are left
// untouched, present ones replace the stored sub-object wholesale.
type UpdatePreferenceRequest struct {
	Channels   *ChannelsPayload   `json:"channels"`
	Categories *CategoriesPayload `json:"categories"`
	Frequency  *string            `json:"frequency" validate:"omitempty,oneof=immediate daily weekly"`
	QuietHours *QuietHoursPayload `json:"quiet_hours"`
}

type PreferenceResponse struct {
	UserId     string            `json:"user_id"`
	Channels   ChannelsPayload   `json:"channels"`
	Categories CategoriesPayload `json:"categories"`
	Frequency  string            `json:"frequency"`
	QuietHours QuietHoursPayload `json:"quiet_hours"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
