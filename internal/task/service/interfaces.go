package service

import (
	"context"

	"taskboard/internal/task/model"
	"taskboard/internal/task/repository"

	"github.com/google/uuid"
)

// TaskStore is the persistence surface the service consumes; the gorm
// repository satisfies it, tests substitute mocks.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, filter repository.ListFilter) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxPositionInStatus(ctx context.Context, statusID uuid.UUID) (int, error)
	MigrateStatus(ctx context.Context, projectID, fromStatusID, toStatusID uuid.UUID) (int64, error)
	CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]int64, error)
	DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}
