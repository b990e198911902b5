package contract

import (
	"context"

	"adminboard-be/internal/model"
)

type UserRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int64, error)
}
