package implementation

import (
	"context"
	"errors"

	"adminboard-be/internal/model"
	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) contract.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var m model.User
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewStorage(err)
	}
	return &m, nil
}

func (r *UserRepositoryImpl) FindAll(ctx context.Context, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, apperrors.NewStorage(err)
	}
	return users, nil
}

func (r *UserRepositoryImpl) Save(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			UpdateAll: true,
		}).
		Create(user).Error
	if err != nil {
		return apperrors.NewStorage(err)
	}
	return nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewStorage(err)
	}
	return count, nil
}
