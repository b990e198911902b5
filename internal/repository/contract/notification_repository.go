package contract

import (
	"context"
	"time"

	"adminboard-be/internal/entity"
	"adminboard-be/internal/repository/specification"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Notification, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// FindVisibleTo returns broadcast notifications plus targeted ones that
	// include userID, newest first with id tie-break.
	FindVisibleTo(ctx context.Context, userID string, specs ...specification.Specification) ([]*entity.Notification, error)

	// AppendReadReceipt inserts a receipt for (notificationID, userID) if none
	// exists yet. The insert is conditional at the storage layer, so two
	// concurrent calls store exactly one receipt and the first ReadAt wins.
	// Returns the stored receipt (the existing one on repeat calls).
	AppendReadReceipt(ctx context.Context, notificationID uuid.UUID, userID string, at time.Time) (*entity.ReadReceipt, error)

	FindReceiptsFor(ctx context.Context, userID string, notificationIDs []uuid.UUID) ([]*entity.ReadReceipt, error)
	CountUnreadFor(ctx context.Context, userID string) (int64, error)
}
