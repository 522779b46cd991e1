package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog is an append-only trail of mutations performed through the engine.
type AuditLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	ActorID    uint              `gorm:"index" json:"actor_id"`
	ActorRole  string            `gorm:"size:32" json:"actor_role"`
	Action     string            `gorm:"size:64;index;not null" json:"action"`
	EntityType string            `gorm:"size:64;index" json:"entity_type"`
	EntityID   *uint             `json:"entity_id"`
	SchoolID   *uint             `gorm:"index" json:"school_id"`
	Metadata   datatypes.JSONMap `json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
