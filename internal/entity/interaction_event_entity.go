package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeQueryIssued   = "QUERY_ISSUED"
	EventTypeProductShown  = "PRODUCT_SHOWN"
	EventTypeProductChosen = "PRODUCT_CHOSEN"
)

// InteractionEvent is one row of the analytics event log. Shown/chosen rows
// carry a ProductId; query rows do not. The affinity rebuild is the only
// consumer inside the core.
type InteractionEvent struct {
	Id        uuid.UUID
	SessionId string
	EventType string
	ProductId *uuid.UUID
	Turn      int
	Payload   map[string]interface{}
	CreatedAt time.Time
}
