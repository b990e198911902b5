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

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferenceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PreferenceMapper
}

func NewPreferenceRepository(db *gorm.DB) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPreferenceMapper(),
	}
}

func (r *PreferenceRepositoryImpl) Find(ctx context.Context, userID string) (*entity.PreferenceRecord, error) {
	var m model.UserNotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStorage(err)
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PreferenceRepositoryImpl) Save(ctx context.Context, record *entity.PreferenceRecord) error {
	m := r.mapper.ToModel(record)
	m.UpdatedAt = time.Now()

	// Upsert keyed by user_id: one record per user, last write wins on the
	// full row. Partial-merge semantics live in the service layer.
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(m).Error
	if err != nil {
		return apperrors.NewStorage(err)
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}
