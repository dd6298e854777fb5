package dto

import "time"

// PublishInteractionMessage is the wire format on the in-process event
// topic. The consumer persists it to the event log and forwards it to the
// external analytics bus.
type PublishInteractionMessage struct {
	Type       string                 `json:"type"`
	SessionId  string                 `json:"session_id"`
	Turn       int                    `json:"turn"`
	ProductIds []string               `json:"product_ids,omitempty"` // shown events
	ProductId  string                 `json:"product_id,omitempty"`  // chosen events
	Intent     map[string]interface{} `json:"intent,omitempty"`      // query events
	At         time.Time              `json:"at"`
}
