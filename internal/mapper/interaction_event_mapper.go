package mapper

import (
	"encoding/json"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/model"

	"gorm.io/datatypes"
)

type InteractionEventMapper struct{}

func NewInteractionEventMapper() *InteractionEventMapper {
	return &InteractionEventMapper{}
}

func (m *InteractionEventMapper) ToEntity(e *model.InteractionEvent) *entity.InteractionEvent {
	if e == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(e.Payload) > 0 {
		_ = json.Unmarshal(e.Payload, &payload)
	}

	return &entity.InteractionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		EventType: e.EventType,
		ProductId: e.ProductId,
		Turn:      e.Turn,
		Payload:   payload,
		CreatedAt: e.CreatedAt,
	}
}

func (m *InteractionEventMapper) ToEntities(events []*model.InteractionEvent) []*entity.InteractionEvent {
	out := make([]*entity.InteractionEvent, 0, len(events))
	for _, e := range events {
		out = append(out, m.ToEntity(e))
	}
	return out
}

func (m *InteractionEventMapper) ToModel(e *entity.InteractionEvent) *model.InteractionEvent {
	if e == nil {
		return nil
	}

	var payload datatypes.JSON
	if e.Payload != nil {
		if data, err := json.Marshal(e.Payload); err == nil {
			payload = datatypes.JSON(data)
		}
	}

	return &model.InteractionEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		EventType: e.EventType,
		ProductId: e.ProductId,
		Turn:      e.Turn,
		Payload:   payload,
		CreatedAt: e.CreatedAt,
	}
}
