package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type InteractionEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string         `gorm:"type:varchar(64);not null;index"`
	EventType string         `gorm:"type:varchar(32);not null;index"`
	ProductId *uuid.UUID     `gorm:"type:uuid;index"`
	Turn      int            `gorm:"default:0"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (InteractionEvent) TableName() string {
	return "interaction_events"
}
