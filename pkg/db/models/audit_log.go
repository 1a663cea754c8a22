package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actorId,omitempty"`
	Action     string     `gorm:"not null;index" json:"action"`
	EntityType string     `gorm:"not null;index" json:"entityType"`
	EntityID   *uuid.UUID `gorm:"type:uuid" json:"entityId,omitempty"`
	Changes    *string    `gorm:"type:text" json:"changes,omitempty"`
	IPAddress  *string    `json:"ipAddress,omitempty"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
