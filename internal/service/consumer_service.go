package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"foodiebot-be/internal/dto"
	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/repository/unitofwork"
	"foodiebot-be/pkg/events"
	pktNats "foodiebot-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process topic, appends rows to the
// interaction event log, and forwards each message to the external NATS
// bus when one is configured. Failures here never reach the scoring path.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher // nil when NATS is unavailable
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishInteractionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal interaction message: %v", err)
		msg.Ack() // invalid payloads are not retriable
		return
	}

	rows := cs.toEventRows(&payload)
	if len(rows) > 0 {
		if err := cs.persistRows(ctx, rows); err != nil {
			log.Printf("[ERROR] Failed to persist %s event for session %s: %v",
				payload.Type, payload.SessionId, err)
			msg.Nack()
			return
		}
	}

	cs.forwardToBus(ctx, &payload)
	msg.Ack()
}

// toEventRows expands one message into event-log rows. A shown message
// becomes one row per product so the affinity rebuild can aggregate
// without JSON unpacking.
func (cs *consumerService) toEventRows(payload *dto.PublishInteractionMessage) []*entity.InteractionEvent {
	now := payload.At
	if now.IsZero() {
		now = time.Now()
	}

	base := entity.InteractionEvent{
		SessionId: payload.SessionId,
		Turn:      payload.Turn,
		CreatedAt: now,
	}

	switch payload.Type {
	case entity.EventTypeQueryIssued:
		row := base
		row.Id = uuid.New()
		row.EventType = entity.EventTypeQueryIssued
		row.Payload = payload.Intent
		return []*entity.InteractionEvent{&row}

	case entity.EventTypeProductShown:
		rows := make([]*entity.InteractionEvent, 0, len(payload.ProductIds))
		for _, idStr := range payload.ProductIds {
			pid, err := uuid.Parse(idStr)
			if err != nil {
				continue
			}
			row := base
			row.Id = uuid.New()
			row.EventType = entity.EventTypeProductShown
			row.ProductId = &pid
			rows = append(rows, &row)
		}
		return rows

	case entity.EventTypeProductChosen:
		pid, err := uuid.Parse(payload.ProductId)
		if err != nil {
			return nil
		}
		row := base
		row.Id = uuid.New()
		row.EventType = entity.EventTypeProductChosen
		row.ProductId = &pid
		return []*entity.InteractionEvent{&row}
	}

	log.Printf("[WARN] Unknown interaction message type: %s", payload.Type)
	return nil
}

func (cs *consumerService) persistRows(ctx context.Context, rows []*entity.InteractionEvent) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	return uow.InteractionEventRepository().CreateBulk(ctx, rows)
}

func (cs *consumerService) forwardToBus(ctx context.Context, payload *dto.PublishInteractionMessage) {
	if cs.eventPublisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	evt := events.BaseEvent{
		Type: payload.Type,
		Data: map[string]interface{}{
			"session_id":  payload.SessionId,
			"turn":        payload.Turn,
			"product_ids": payload.ProductIds,
			"product_id":  payload.ProductId,
			"intent":      payload.Intent,
		},
		OccurredAt: payload.At,
	}
	if err := cs.eventPublisher.Publish(pubCtx, evt); err != nil {
		log.Printf("[WARN] Failed to forward event to NATS: %v", err)
	}
}
