package contract

import (
	"context"

	"foodiebot-be/internal/entity"
	"foodiebot-be/internal/repository/specification"
)

// InteractionEventRepository is the analytics event log: append-mostly,
// read back in batch by the affinity rebuild.
type InteractionEventRepository interface {
	Create(ctx context.Context, event *entity.InteractionEvent) error
	CreateBulk(ctx context.Context, events []*entity.InteractionEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InteractionEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
