package repository

import (
	"context"
	"errors"

	"taskboard/internal/project/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StatusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{db: db}
}

// Create inserts a column. A name collision within the project surfaces as
// ErrDuplicateStatusName via the (project_id, name) constraint.
func (r *StatusRepository) Create(ctx context.Context, status *model.TaskStatus) error {
	err := r.db.WithContext(ctx).Create(status).Error
	if isUniqueViolation(err) {
		return ErrDuplicateStatusName
	}
	return err
}

// GetByIDAndProject scopes the lookup to the project, so a status that
// exists but belongs to another project reads as absent.
func (r *StatusRepository) GetByIDAndProject(ctx context.Context, id, projectID uuid.UUID) (*model.TaskStatus, error) {
	var status model.TaskStatus
	err := r.db.WithContext(ctx).
		Where("id = ? AND project_id = ?", id, projectID).
		First(&status).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *StatusRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.TaskStatus, error) {
	var statuses []model.TaskStatus
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position").
		Find(&statuses).Error
	return statuses, err
}

func (r *StatusRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskStatus{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *StatusRepository) ExistsName(ctx context.Context, projectID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskStatus{}).
		Where("project_id = ? AND name = ?", projectID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *StatusRepository) MaxPosition(ctx context.Context, projectID uuid.UUID) (int, error) {
	var result struct {
		Max int
	}
	err := r.db.WithContext(ctx).Model(&model.TaskStatus{}).
		Select("COALESCE(MAX(position), -1) as max").
		Where("project_id = ?", projectID).
		Scan(&result).Error
	return result.Max, err
}

func (r *StatusRepository) Update(ctx context.Context, status *model.TaskStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *StatusRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TaskStatus{}, "id = ?", id).Error
}

// Reorder applies the given positions in one transaction; either the whole
// new order lands or none of it does.
func (r *StatusRepository) Reorder(ctx context.Context, statuses []model.TaskStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, status := range statuses {
			if err := tx.Model(&model.TaskStatus{}).Where("id = ?", status.ID).
				Update("position", status.Position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
