package entity

import "time"

type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyImmediate || f == FrequencyDaily || f == FrequencyWeekly
}

type Channels struct {
	Email bool
	Push  bool
	Sms   bool
}

type Categories struct {
	Marketing bool
	System    bool
	Updates   bool
}

// Enabled reports whether the given category is switched on in this record.
// Unknown categories are treated as enabled; gating only applies to the
// documented set.
func (c Categories) Enabled(cat Category) bool {
	switch cat {
	case CategoryMarketing:
		return c.Marketing
	case CategorySystem:
		return c.System
	case CategoryUpdates:
		return c.Updates
	}
	return true
}

// QuietHours is a recurring daily window. Start and End are "HH:MM" in 24h
// form; Start > End means the window wraps midnight.
type QuietHours struct {
	Enabled bool
	Start   string
	End     string
}

type PreferenceRecord struct {
	UserId     string
	Channels   Channels
	Categories Categories
	Frequency  Frequency
	QuietHours QuietHours
	UpdatedAt  time.Time
}

// DefaultPreferenceRecord is what a user without a persisted row gets:
// email and push on, sms off, every category on, immediate delivery,
// quiet hours disabled.
func DefaultPreferenceRecord(userID string) *PreferenceRecord {
	return &PreferenceRecord{
		UserId: userID,
		Channels: Channels{
			Email: true,
			Push:  true,
			Sms:   false,
		},
		Categories: Categories{
			Marketing: true,
			System:    true,
			Updates:   true,
		},
		Frequency: FrequencyImmediate,
		QuietHours: QuietHours{
			Enabled: false,
			Start:   "22:00",
			End:     "07:00",
		},
	}
}
