package service

import (
	"context"
	"encoding/json"
	"fmt"

	"foodiebot-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService puts interaction messages on the in-process event bus.
// Publishing is the fire-and-forget half of the Event Sink: the scoring
// path never waits on persistence.
type IPublisherService interface {
	Publish(ctx context.Context, msg *dto.PublishInteractionMessage) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (s *publisherService) Publish(ctx context.Context, msg *dto.PublishInteractionMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction message: %w", err)
	}

	wmMsg := message.NewMessage(watermill.NewUUID(), payload)
	wmMsg.SetContext(ctx)

	if err := s.publisher.Publish(s.topicName, wmMsg); err != nil {
		return fmt.Errorf("failed to publish interaction message: %w", err)
	}
	return nil
}
