package directory

import (
	"context"

	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/repository/unitofwork"
)

// GormDirectory serves lookups from the locally mirrored users table. The
// mirror is maintained by the identity provider's sync job; from the
// notification engine's point of view it is still an external collaborator.
type GormDirectory struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGormDirectory(uowFactory unitofwork.RepositoryFactory) *GormDirectory {
	return &GormDirectory{uowFactory: uowFactory}
}

func (d *GormDirectory) Lookup(ctx context.Context, userID string) (Profile, error) {
	uow := d.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindByExternalID(ctx, userID)
	if err != nil {
		return Profile{}, apperrors.NewDirectoryUnavailable(err)
	}
	if user == nil {
		return Profile{Exists: false}, nil
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}
	return Profile{
		Exists:            true,
		FullName:          user.FullName,
		ProfilePictureURL: avatarURL,
	}, nil
}
