package service

import (
	"context"

	"adminboard-be/internal/pkg/logger"
	"adminboard-be/pkg/events"
	pktNats "adminboard-be/pkg/nats"
)

type IAuditService interface {
	Start()
}

// auditService consumes the durable NATS event stream and writes an audit
// trail of every NOTIFICATION_SENT, NOTIFICATION_READ and PREFERENCE_UPDATED
// event. The durable consumer survives restarts, so no event goes unlogged.
type auditService struct {
	subscriber *pktNats.Subscriber
	logger     logger.ILogger
}

func NewAuditService(subscriber *pktNats.Subscriber, log logger.ILogger) IAuditService {
	return &auditService{
		subscriber: subscriber,
		logger:     log,
	}
}

// Start subscribes to all event subjects. It is a no-op when NATS was not
// reachable at startup, so the API can still serve without the audit trail.
func (s *auditService) Start() {
	if s.subscriber == nil {
		return
	}

	err := s.subscriber.Subscribe("events.>", "notif-audit-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("AuditService", "Failed to subscribe to event stream", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	s.logger.Info("AuditService", "Audit worker started", nil)
}

func (s *auditService) handleEvent(ctx context.Context, event events.Event) error {
	s.logger.Info("AuditService", "Event received", map[string]interface{}{
		"event_type":  event.EventType(),
		"payload":     event.Payload(),
		"occurred_at": event.Timestamp(),
	})
	return nil
}
