package service

import (
	"context"

	"taskboard/internal/project/model"

	"github.com/google/uuid"
)

// Store interfaces consumed by the services; the gorm repositories satisfy
// them, tests substitute mocks.

type ProjectStore interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	ListAll(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemberStore interface {
	Add(ctx context.Context, member *model.ProjectMember) error
	Exists(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, projectID, userID uuid.UUID) (*model.ProjectMember, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.ProjectMember, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	Remove(ctx context.Context, member *model.ProjectMember) error
}

type InvitationStore interface {
	Create(ctx context.Context, invitation *model.Invitation) error
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	ExistsPending(ctx context.Context, projectID uuid.UUID, email string) (bool, error)
	Update(ctx context.Context, invitation *model.Invitation) error
}

type StatusStore interface {
	Create(ctx context.Context, status *model.TaskStatus) error
	GetByIDAndProject(ctx context.Context, id, projectID uuid.UUID) (*model.TaskStatus, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.TaskStatus, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	ExistsName(ctx context.Context, projectID uuid.UUID, name string) (bool, error)
	MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error)
	Update(ctx context.Context, status *model.TaskStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, statuses []model.TaskStatus) error
}
