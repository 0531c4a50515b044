package model

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of the project itself, distinct from
// the Kanban columns its tasks move through.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "PLANNING"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectArchived   ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Title       string        `gorm:"not null"`
	Description string
	Status      ProjectStatus `gorm:"not null;default:IN_PROGRESS"`
	Color       string
	StartDate   *time.Time
	EndDate     *time.Time
	OwnerID     uuid.UUID `gorm:"type:uuid;not null"` // immutable after creation
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProjectMember is the join row for a non-owner user's membership. The owner
// never appears here; "is owner" and "is member" are two distinct checks.
type ProjectMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_project_user"`
	JoinedAt  time.Time `gorm:"autoCreateTime"`
}

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationExpired  InvitationStatus = "EXPIRED"
)

// Invitation is a pending offer of membership to an email address not yet
// resolvable to a user. At most one PENDING row may exist per
// (project, email); a partial unique index enforces it at write time.
type Invitation struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Email     string           `gorm:"not null"` // lower-cased, trimmed
	InvitedBy uuid.UUID        `gorm:"type:uuid;not null"`
	Token     string           `gorm:"not null;uniqueIndex"`
	Status    InvitationStatus `gorm:"not null;default:PENDING"`
	CreatedAt time.Time
	ExpiresAt time.Time
}

// TaskStatus is a Kanban column: a named, colored, ordered bucket owned by a
// project. Task rows referencing it live in the task service.
type TaskStatus struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"` // unique within project, case-sensitive
	Color     string    `gorm:"not null"`
	Position  int       `gorm:"not null"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}
