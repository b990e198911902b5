package implementation

import (
	"context"
	"errors"
	"time"

	"adminboard-be/internal/entity"
	"adminboard-be/internal/mapper"
	"adminboard-be/internal/model"
	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/repository/contract"
	"adminboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.NotificationMapper
}

func NewNotificationRepository(db *gorm.DB) contract.NotificationRepository {
	return &NotificationRepositoryImpl{
		db:     db,
		mapper: mapper.NewNotificationMapper(),
	}
}

func (r *NotificationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create persists a notification. The recipients invariant is enforced here,
// not just in the service layer: a broadcast row must carry no recipients and
// a targeted row at least one, or visibility queries would leak the record.
func (r *NotificationRepositoryImpl) Create(ctx context.Context, notification *entity.Notification) error {
	switch notification.DeliveryMode {
	case entity.DeliveryModeBroadcast:
		if len(notification.Recipients) > 0 {
			return apperrors.NewValidation("broadcast notifications must not list recipients")
		}
	case entity.DeliveryModeTargeted:
		if len(notification.Recipients) == 0 {
			return apperrors.NewValidation("targeted notifications require at least one recipient")
		}
	default:
		return apperrors.NewValidation("unknown delivery mode %q", notification.DeliveryMode)
	}

	m := r.mapper.ToModel(notification)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = m.CreatedAt

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return apperrors.NewStorage(err)
	}
	*notification = *r.mapper.ToEntity(m)
	return nil
}

func (r *NotificationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error) {
	var m model.Notification
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStorage(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *NotificationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error) {
	var models []*model.Notification
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	query = specification.NewestFirst{}.Apply(query)
	if err := query.Find(&models).Error; err != nil {
		return nil, apperrors.NewStorage(err)
	}
	return r.mapper.ToEntities(models), nil
}

func (r *NotificationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Notification{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewStorage(err)
	}
	return count, nil
}

func (r *NotificationRepositoryImpl) FindVisibleTo(ctx context.Context, userID string, specs ...specification.Specification) ([]*entity.Notification, error) {
	allSpecs := append([]specification.Specification{specification.VisibleTo{UserID: userID}}, specs...)
	return r.FindAll(ctx, allSpecs...)
}

// AppendReadReceipt relies on the composite primary key of
// notification_read_receipts: the insert carries ON CONFLICT DO NOTHING, so
// under concurrent calls exactly one row lands and later calls are no-ops.
// The receipt returned is always the stored one, meaning the earliest ReadAt.
func (r *NotificationRepositoryImpl) AppendReadReceipt(ctx context.Context, notificationID uuid.UUID, userID string, at time.Time) (*entity.ReadReceipt, error) {
	var exists int64
	if err := r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id = ?", notificationID).
		Count(&exists).Error; err != nil {
		return nil, apperrors.NewStorage(err)
	}
	if exists == 0 {
		return nil, apperrors.NewNotFound("notification %s not found", notificationID)
	}

	receipt := model.NotificationReadReceipt{
		NotificationID: notificationID,
		UserID:         userID,
		ReadAt:         at,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&receipt)
	if res.Error != nil {
		return nil, apperrors.NewStorage(res.Error)
	}

	if res.RowsAffected > 0 {
		// First read: the notification record was mutated, reflect that.
		if err := r.db.WithContext(ctx).
			Model(&model.Notification{}).
			Where("id = ?", notificationID).
			Update("updated_at", at).Error; err != nil {
			return nil, apperrors.NewStorage(err)
		}
	}

	// Re-read so repeat calls return the original first-read timestamp.
	var stored model.NotificationReadReceipt
	if err := r.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&stored).Error; err != nil {
		return nil, apperrors.NewStorage(err)
	}
	return r.mapper.ReceiptToEntity(&stored), nil
}

func (r *NotificationRepositoryImpl) FindReceiptsFor(ctx context.Context, userID string, notificationIDs []uuid.UUID) ([]*entity.ReadReceipt, error) {
	if len(notificationIDs) == 0 {
		return nil, nil
	}
	var models []*model.NotificationReadReceipt
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Find(&models).Error; err != nil {
		return nil, apperrors.NewStorage(err)
	}
	receipts := make([]*entity.ReadReceipt, 0, len(models))
	for _, m := range models {
		receipts = append(receipts, r.mapper.ReceiptToEntity(m))
	}
	return receipts, nil
}

func (r *NotificationRepositoryImpl) CountUnreadFor(ctx context.Context, userID string) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Notification{})
	query = specification.VisibleTo{UserID: userID}.Apply(query)
	query = specification.UnreadBy{UserID: userID}.Apply(query)
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.NewStorage(err)
	}
	return count, nil
}
