package service

import (
	"context"
	"strings"
	"time"

	"adminboard-be/internal/dto"
	"adminboard-be/internal/entity"
	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/internal/repository/specification"
	"adminboard-be/internal/repository/unitofwork"
	"adminboard-be/pkg/directory"
	"adminboard-be/pkg/events"
	pktNats "adminboard-be/pkg/nats"
	"adminboard-be/pkg/store"

	"github.com/google/uuid"
)

type INotificationService interface {
	Send(ctx context.Context, senderID string, req *dto.SendNotificationRequest) (*dto.NotificationView, error)
	ListFor(ctx context.Context, userID string, limit, offset int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID, userID string) (*dto.NotificationView, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	uowFactory  unitofwork.RepositoryFactory
	directory   directory.Directory
	dispatch    IDispatchQueue
	publisher   *pktNats.Publisher
	unreadCache *store.UnreadCache
	logger      logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	dir directory.Directory,
	dispatch IDispatchQueue,
	publisher *pktNats.Publisher,
	unreadCache *store.UnreadCache,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory:  uowFactory,
		directory:   dir,
		dispatch:    dispatch,
		publisher:   publisher,
		unreadCache: unreadCache,
		logger:      log,
	}
}

// Send validates, persists and fans out one notification. The sender avatar
// is captured from the directory exactly once, at send time; a directory
// outage degrades to an empty avatar and never fails the send.
func (s *notificationService) Send(ctx context.Context, senderID string, req *dto.SendNotificationRequest) (*dto.NotificationView, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" {
		return nil, apperrors.NewValidation("title must not be empty")
	}
	if message == "" {
		return nil, apperrors.NewValidation("message must not be empty")
	}

	mode := entity.DeliveryMode(req.DeliveryMode)
	if !mode.Valid() {
		return nil, apperrors.NewValidation("delivery_mode must be broadcast or targeted")
	}

	category := entity.Category(req.Category)
	if req.Category == "" {
		category = entity.CategorySystem
	}
	if !category.Valid() {
		return nil, apperrors.NewValidation("unknown category %q", req.Category)
	}

	recipients := dedupe(req.Recipients)
	switch mode {
	case entity.DeliveryModeBroadcast:
		if len(recipients) > 0 {
			return nil, apperrors.NewValidation("broadcast notifications must not list recipients")
		}
	case entity.DeliveryModeTargeted:
		if len(recipients) == 0 {
			return nil, apperrors.NewValidation("targeted notifications require at least one recipient")
		}
	}

	avatarURL := s.resolveSenderAvatar(ctx, senderID)

	notification := &entity.Notification{
		Title:           title,
		Message:         message,
		Category:        category,
		DeliveryMode:    mode,
		Recipients:      recipients,
		CreatedBy:       senderID,
		SenderAvatarURL: avatarURL,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, notification); err != nil {
		return nil, err
	}

	if mode == entity.DeliveryModeBroadcast {
		s.unreadCache.InvalidateAll(ctx)
	} else {
		for _, r := range recipients {
			s.unreadCache.InvalidateUser(ctx, r)
		}
	}

	s.publishEvent(ctx, events.TypeNotificationSent, map[string]interface{}{
		"notification_id": notification.Id.String(),
		"delivery_mode":   string(mode),
		"category":        string(category),
		"created_by":      senderID,
	})
	s.enqueueDispatch(ctx, notification)

	return s.toView(notification, nil), nil
}

func (s *notificationService) resolveSenderAvatar(ctx context.Context, senderID string) *string {
	if s.directory == nil {
		return nil
	}
	profile, err := s.directory.Lookup(ctx, senderID)
	if err != nil {
		// Recovered locally: the send proceeds without an avatar.
		s.logger.Warn("NotificationService", "Directory unavailable, sending without avatar", map[string]interface{}{
			"sender_id": senderID,
			"error":     err.Error(),
		})
		return nil
	}
	if !profile.Exists || profile.ProfilePictureURL == "" {
		return nil
	}
	url := profile.ProfilePictureURL
	return &url
}

func (s *notificationService) enqueueDispatch(ctx context.Context, n *entity.Notification) {
	if s.dispatch == nil {
		return
	}
	queuedAt := time.Now()
	targets := n.Recipients
	if n.DeliveryMode == entity.DeliveryModeBroadcast {
		// A broadcast is queued once; the dispatch consumer expands it
		// against the user mirror.
		targets = []string{""}
	}
	for _, recipient := range targets {
		msg := dto.DispatchNotificationMessage{
			NotificationId: n.Id,
			RecipientId:    recipient,
			Category:       string(n.Category),
			QueuedAt:       queuedAt,
		}
		if err := s.dispatch.Enqueue(ctx, msg); err != nil {
			s.logger.Warn("NotificationService", "Failed to enqueue dispatch", map[string]interface{}{
				"notification_id": n.Id.String(),
				"recipient":       recipient,
				"error":           err.Error(),
			})
		}
	}
}

// ListFor returns the user's inbox, newest first, annotated with read state.
// Preferences do not filter here: they gate proactive dispatch, not
// retroactive visibility.
func (s *notificationService) ListFor(ctx context.Context, userID string, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	total, err := repo.Count(ctx, specification.VisibleTo{UserID: userID})
	if err != nil {
		return nil, err
	}

	notifications, err := repo.FindVisibleTo(ctx, userID, specification.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.Id)
	}
	receipts, err := repo.FindReceiptsFor(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	receiptByID := make(map[uuid.UUID]*entity.ReadReceipt, len(receipts))
	for _, r := range receipts {
		receiptByID[r.NotificationId] = r
	}

	views := make([]*dto.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, s.toView(n, receiptByID[n.Id]))
	}

	return &dto.NotificationListResponse{
		Data:  views,
		Total: total,
		Page:  offset/limit + 1,
		Limit: limit,
	}, nil
}

// MarkRead is idempotent: repeat and concurrent calls for the same pair
// resolve to the single stored receipt with the first read timestamp.
func (s *notificationService) MarkRead(ctx context.Context, notificationID uuid.UUID, userID string) (*dto.NotificationView, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NotificationRepository()

	receipt, err := repo.AppendReadReceipt(ctx, notificationID, userID, time.Now())
	if err != nil {
		return nil, err
	}

	notification, err := repo.FindOne(ctx, specification.ByID{ID: notificationID})
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperrors.NewNotFound("notification %s not found", notificationID)
	}

	s.unreadCache.InvalidateUser(ctx, userID)
	s.publishEvent(ctx, events.TypeNotificationRead, map[string]interface{}{
		"notification_id": notificationID.String(),
		"user_id":         userID,
	})

	return s.toView(notification, receipt), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, hit := s.unreadCache.Get(ctx, userID); hit {
		return count, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.NotificationRepository().CountUnreadFor(ctx, userID)
	if err != nil {
		return 0, err
	}
	// A mark-read that lands between the count query and this Set can leave a
	// stale value behind. The cache TTL bounds how long it survives.
	s.unreadCache.Set(ctx, userID, count)
	return count, nil
}

func (s *notificationService) publishEvent(ctx context.Context, eventType string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("NotificationService", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func (s *notificationService) toView(n *entity.Notification, receipt *entity.ReadReceipt) *dto.NotificationView {
	view := &dto.NotificationView{
		Id:           n.Id,
		Title:        n.Title,
		Message:      n.Message,
		Category:     string(n.Category),
		DeliveryMode: string(n.DeliveryMode),
		Recipients:   n.Recipients,
		CreatedBy:    n.CreatedBy,
		CreatedAt:    n.CreatedAt,
	}
	if n.SenderAvatarURL != nil {
		view.SenderAvatarURL = *n.SenderAvatarURL
	}
	if receipt != nil {
		view.IsRead = true
		readAt := receipt.ReadAt
		view.ReadAt = &readAt
	}
	return view
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
