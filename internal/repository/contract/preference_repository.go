package contract

import (
	"context"

	"adminboard-be/internal/entity"
)

type PreferenceRepository interface {
	// Find returns nil (no error) when the user has no persisted record;
	// callers substitute the default record.
	Find(ctx context.Context, userID string) (*entity.PreferenceRecord, error)

	// Save upserts the full record keyed by user id.
	Save(ctx context.Context, record *entity.PreferenceRecord) error
}
