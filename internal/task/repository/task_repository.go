package repository

import (
	"context"
	"errors"

	"taskboard/internal/task/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListFilter narrows List; zero values mean "no filter".
type ListFilter struct {
	ProjectID  uuid.UUID
	StatusID   uuid.UUID
	AssignedTo uuid.UUID
	Search     string
}

func (r *TaskRepository) List(ctx context.Context, filter ListFilter) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{})
	if filter.ProjectID != uuid.Nil {
		q = q.Where("project_id = ?", filter.ProjectID)
	}
	if filter.StatusID != uuid.Nil {
		q = q.Where("status_id = ?", filter.StatusID)
	}
	if filter.AssignedTo != uuid.Nil {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var tasks []model.Task
	err := q.Order("position").Order("created_at").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id).Error
}

// MaxPositionInStatus returns -1 for an empty column so the first append
// lands at position 0.
func (r *TaskRepository) MaxPositionInStatus(ctx context.Context, statusID uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("COALESCE(MAX(position), -1) as max").
		Where("status_id = ?", statusID).
		Scan(&result).Error
	return result.Max, err
}

// MigrateStatus moves every task in fromStatusID to toStatusID, appended
// after the target's current maximum position in their existing relative
// order. Runs in one transaction so a half-moved column is never visible.
func (r *TaskRepository) MigrateStatus(ctx context.Context, projectID, fromStatusID, toStatusID uuid.UUID) (int64, error) {
	var moved int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var result struct {
			Max int
		}
		if err := tx.Model(&model.Task{}).
			Select("COALESCE(MAX(position), -1) as max").
			Where("status_id = ?", toStatusID).
			Scan(&result).Error; err != nil {
			return err
		}

		var tasks []model.Task
		if err := tx.
			Where("project_id = ? AND status_id = ?", projectID, fromStatusID).
			Order("position").
			Find(&tasks).Error; err != nil {
			return err
		}

		next := result.Max + 1
		for i := range tasks {
			if err := tx.Model(&model.Task{}).Where("id = ?", tasks[i].ID).
				Updates(map[string]interface{}{
					"status_id": toStatusID,
					"position":  next + i,
				}).Error; err != nil {
				return err
			}
		}
		moved = int64(len(tasks))
		return nil
	})
	return moved, err
}

func (r *TaskRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// CountByStatus returns per-column task counts for a project keyed by
// status id.
func (r *TaskRepository) CountByStatus(ctx context.Context, projectID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		StatusID uuid.UUID
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status_id, COUNT(*) as count").
		Where("project_id = ?", projectID).
		Group("status_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.StatusID] = row.Count
	}
	return counts, nil
}

func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "project_id = ?", projectID)
	return result.RowsAffected, result.Error
}
