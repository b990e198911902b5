package service

import (
	"context"
	"time"

	"adminboard-be/internal/dto"
	"adminboard-be/internal/entity"
	"adminboard-be/internal/pkg/apperrors"
	"adminboard-be/internal/pkg/logger"
	"adminboard-be/internal/repository/unitofwork"
	"adminboard-be/pkg/events"
	pktNats "adminboard-be/pkg/nats"
)

type IPreferenceService interface {
	Get(ctx context.Context, userID string) (*dto.PreferenceResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error)
}

type preferenceService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  *pktNats.Publisher
	logger     logger.ILogger
}

func NewPreferenceService(uowFactory unitofwork.RepositoryFactory, publisher *pktNats.Publisher, log logger.ILogger) IPreferenceService {
	return &preferenceService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

// Get returns the persisted record or, when none exists, the default record
// (email and push on, sms off, all categories on, immediate, quiet hours off).
func (s *preferenceService) Get(ctx context.Context, userID string) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	record, err := uow.PreferenceRepository().Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = entity.DefaultPreferenceRecord(userID)
	}
	return toPreferenceResponse(record), nil
}

// Update merges the supplied sub-objects into the stored record. A nil
// sub-object leaves the stored one untouched; a present sub-object replaces
// it wholesale. There is no deep merge below the documented shape.
func (s *preferenceService) Update(ctx context.Context, userID string, req *dto.UpdatePreferenceRequest) (*dto.PreferenceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PreferenceRepository()

	record, err := repo.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		record = entity.DefaultPreferenceRecord(userID)
	}

	if req.Channels != nil {
		record.Channels = entity.Channels{
			Email: req.Channels.Email,
			Push:  req.Channels.Push,
			Sms:   req.Channels.Sms,
		}
	}
	if req.Categories != nil {
		record.Categories = entity.Categories{
			Marketing: req.Categories.Marketing,
			System:    req.Categories.System,
			Updates:   req.Categories.Updates,
		}
	}
	if req.Frequency != nil {
		freq := entity.Frequency(*req.Frequency)
		if !freq.Valid() {
			return nil, apperrors.NewValidation("unknown frequency %q", *req.Frequency)
		}
		record.Frequency = freq
	}
	if req.QuietHours != nil {
		record.QuietHours = entity.QuietHours{
			Enabled: req.QuietHours.Enabled,
			Start:   req.QuietHours.Start,
			End:     req.QuietHours.End,
		}
	}

	if err := repo.Save(ctx, record); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		evt := events.BaseEvent{
			Type: events.TypePreferenceSaved,
			Data: map[string]interface{}{
				"user_id":   userID,
				"frequency": string(record.Frequency),
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("PreferenceService", "Failed to publish preference event", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	return toPreferenceResponse(record), nil
}

func toPreferenceResponse(record *entity.PreferenceRecord) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		UserId: record.UserId,
		Channels: dto.ChannelsPayload{
			Email: record.Channels.Email,
			Push:  record.Channels.Push,
			Sms:   record.Channels.Sms,
		},
		Categories: dto.CategoriesPayload{
			Marketing: record.Categories.Marketing,
			System:    record.Categories.System,
			Updates:   record.Categories.Updates,
		},
		Frequency: string(record.Frequency),
		QuietHours: dto.QuietHoursPayload{
			Enabled: record.QuietHours.Enabled,
			Start:   record.QuietHours.Start,
			End:     record.QuietHours.End,
		},
		UpdatedAt: record.UpdatedAt,
	}
}
