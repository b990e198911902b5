package unitofwork

import (
	"context"

	"adminboard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NotificationRepository() contract.NotificationRepository
	PreferenceRepository() contract.PreferenceRepository
	UserRepository() contract.UserRepository
}
