package service

import (
	"context"
	"encoding/json"

	"adminboard-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IDispatchQueue feeds the in-process dispatch pipeline. One message per
// targeted recipient; broadcasts are queued once and expanded by the consumer.
type IDispatchQueue interface {
	Enqueue(ctx context.Context, msg dto.DispatchNotificationMessage) error
}

type dispatchQueue struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewDispatchQueue(topicName string, pubSub *gochannel.GoChannel) IDispatchQueue {
	return &dispatchQueue{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (q *dispatchQueue) Enqueue(ctx context.Context, payload dto.DispatchNotificationMessage) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)

	return q.pubSub.Publish(q.topicName, msg)
}
