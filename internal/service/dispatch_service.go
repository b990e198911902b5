package service

import (
	"context"
	"encoding/json"
	"time"

	"adminboard-be/internal/dto"
	"adminboard-be/internal/entity"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/internal/repository/unitofwork"
	"adminboard-be/pkg/delivery"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IDispatchService consumes queued dispatch messages and evaluates each
// recipient's preferences. It only decides "surface now" vs "due later at T"
// vs "suppressed"; channel transport (push/email/sms) is an external
// collaborator that acts on the published decisions.
type IDispatchService interface {
	Consume(ctx context.Context) error
}

const broadcastExpandPageSize = 200

type dispatchService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewDispatchService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IDispatchService {
	return &dispatchService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *dispatchService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *dispatchService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.DispatchNotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("DispatchService", "Failed to unmarshal dispatch message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed messages would retry forever otherwise
		return
	}

	if payload.RecipientId == "" {
		s.expandBroadcast(ctx, payload)
	} else {
		s.evaluateRecipient(ctx, payload.RecipientId, payload)
	}

	msg.Ack()
}

// expandBroadcast walks the user mirror page by page and evaluates each user
// individually. Pages are independent, so a partial walk just means some
// decisions land later; nothing is held under a lock.
func (s *dispatchService) expandBroadcast(ctx context.Context, payload dto.DispatchNotificationMessage) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	userRepo := uow.UserRepository()

	for offset := 0; ; offset += broadcastExpandPageSize {
		users, err := userRepo.FindAll(ctx, broadcastExpandPageSize, offset)
		if err != nil {
			s.logger.Error("DispatchService", "Broadcast expansion failed", map[string]interface{}{
				"notification_id": payload.NotificationId.String(),
				"offset":          offset,
				"error":           err.Error(),
			})
			return
		}
		if len(users) == 0 {
			return
		}
		for _, user := range users {
			s.evaluateRecipient(ctx, user.ExternalID, payload)
		}
	}
}

func (s *dispatchService) evaluateRecipient(ctx context.Context, userID string, payload dto.DispatchNotificationMessage) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.PreferenceRepository().Find(ctx, userID)
	if err != nil {
		s.logger.Error("DispatchService", "Failed to load preferences", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}
	if record == nil {
		record = entity.DefaultPreferenceRecord(userID)
	}

	decision := delivery.Evaluate(record, entity.Category(payload.Category), time.Now())

	details := map[string]interface{}{
		"notification_id": payload.NotificationId.String(),
		"user_id":         userID,
		"category":        payload.Category,
		"eligible":        decision.Eligible,
	}
	if decision.NextEligibleAt != nil {
		details["next_eligible_at"] = decision.NextEligibleAt.Format(time.RFC3339)
	}

	switch {
	case decision.Eligible:
		s.logger.Info("DispatchService", "Dispatch due now", details)
	case decision.NextEligibleAt != nil:
		s.logger.Info("DispatchService", "Dispatch deferred", details)
	default:
		s.logger.Info("DispatchService", "Dispatch suppressed by category preference", details)
	}
}
