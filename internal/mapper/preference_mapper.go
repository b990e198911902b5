package mapper

import (
	"adminboard-be/internal/entity"
	"adminboard-be/internal/model"
)

type PreferenceMapper struct{}

func NewPreferenceMapper() *PreferenceMapper {
	return &PreferenceMapper{}
}

func (m *PreferenceMapper) ToEntity(p *model.UserNotificationPreference) *entity.PreferenceRecord {
	if p == nil {
		return nil
	}
	return &entity.PreferenceRecord{
		UserId: p.UserID,
		Channels: entity.Channels{
			Email: p.EmailEnabled,
			Push:  p.PushEnabled,
			Sms:   p.SmsEnabled,
		},
		Categories: entity.Categories{
			Marketing: p.CategoryMarketing,
			System:    p.CategorySystem,
			Updates:   p.CategoryUpdates,
		},
		Frequency: entity.Frequency(p.Frequency),
		QuietHours: entity.QuietHours{
			Enabled: p.QuietHoursEnabled,
			Start:   p.QuietHoursStart,
			End:     p.QuietHoursEnd,
		},
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *PreferenceMapper) ToModel(p *entity.PreferenceRecord) *model.UserNotificationPreference {
	if p == nil {
		return nil
	}
	return &model.UserNotificationPreference{
		UserID:            p.UserId,
		EmailEnabled:      p.Channels.Email,
		PushEnabled:       p.Channels.Push,
		SmsEnabled:        p.Channels.Sms,
		CategoryMarketing: p.Categories.Marketing,
		CategorySystem:    p.Categories.System,
		CategoryUpdates:   p.Categories.Updates,
		Frequency:         string(p.Frequency),
		QuietHoursEnabled: p.QuietHours.Enabled,
		QuietHoursStart:   p.QuietHours.Start,
		QuietHoursEnd:     p.QuietHours.End,
		UpdatedAt:         p.UpdatedAt,
	}
}
