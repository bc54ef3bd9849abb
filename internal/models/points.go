// internal/models/points.go
package models

import (
	"github.com/google/uuid"
)

// FanPoints is a fan's accrued loyalty balance. Strictly additive: nothing in
// this system ever decrements it. A missing row reads as zero, and a zero
// award never creates a row.
type FanPoints struct {
	BaseModel
	FanID   uuid.UUID `json:"fan_id" gorm:"type:uuid;not null;uniqueIndex"`
	// Stored as a decimal string so the full 128-bit range survives exactly.
	Balance U128 `json:"balance" gorm:"type:varchar(40);not null"`

	// Relationships
	Fan User `json:"fan,omitempty" gorm:"foreignKey:FanID"`
}
