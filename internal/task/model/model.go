package model

import (
	"time"

	"github.com/google/uuid"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority returns the matching Priority or PriorityMedium for anything
// it does not recognize.
func ParsePriority(raw string) Priority {
	switch Priority(raw) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(raw)
	default:
		return PriorityMedium
	}
}

// Task references its column by StatusID only. The column row lives in the
// project service; the reference is validated over RPC on every write, never
// by a local foreign key.
type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	ProjectID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	StatusID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Priority    Priority   `gorm:"not null;default:MEDIUM"`
	DueDate     *time.Time
	AssignedTo  *uuid.UUID `gorm:"type:uuid"`
	Position    int        `gorm:"not null"` // ordering within StatusID only
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
