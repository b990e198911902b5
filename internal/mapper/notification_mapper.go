package mapper

import (
	"adminboard-be/internal/entity"
	"adminboard-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:              n.ID,
		Title:           n.Title,
		Message:         n.Message,
		Category:        entity.Category(n.Category),
		DeliveryMode:    entity.DeliveryMode(n.DeliveryMode),
		Recipients:      []string(n.Recipients),
		CreatedBy:       n.CreatedBy,
		SenderAvatarURL: n.SenderAvatarURL,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func (m *NotificationMapper) ToEntities(models []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	recipients := n.Recipients
	if recipients == nil {
		recipients = []string{}
	}
	return &model.Notification{
		ID:              n.Id,
		Title:           n.Title,
		Message:         n.Message,
		Category:        string(n.Category),
		DeliveryMode:    string(n.DeliveryMode),
		Recipients:      datatypes.NewJSONSlice(recipients),
		CreatedBy:       n.CreatedBy,
		SenderAvatarURL: n.SenderAvatarURL,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}

func (m *NotificationMapper) ReceiptToEntity(r *model.NotificationReadReceipt) *entity.ReadReceipt {
	if r == nil {
		return nil
	}
	return &entity.ReadReceipt{
		NotificationId: r.NotificationID,
		UserId:         r.UserID,
		ReadAt:         r.ReadAt,
	}
}
